// Package session stores multi-turn conversation history for the pipeline.
// The pipeline core only ever reads a bounded window of a session; ownership
// of the full history lives behind the Store interface so callers can choose
// an in-memory or persistent backend.
package session

import "context"

// MaxTurns is how many turns a session retains. Older turns are dropped.
const MaxTurns = 20

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Store is a conversation history capability. Get on an unknown id returns
// an empty history, not an error; Clear on an unknown id is a no-op.
type Store interface {
	Get(ctx context.Context, id string) ([]Turn, error)
	Put(ctx context.Context, id string, turns []Turn) error
	Clear(ctx context.Context, id string) error
}

// Append adds turns to a session and trims it to the newest MaxTurns.
func Append(ctx context.Context, store Store, id string, turns ...Turn) error {
	history, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	history = append(history, turns...)
	if len(history) > MaxTurns {
		history = history[len(history)-MaxTurns:]
	}
	return store.Put(ctx, id, history)
}
