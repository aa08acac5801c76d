package llm

import (
	"context"
	"fmt"
)

// Call records one Complete invocation against a Mock.
type Call struct {
	System string
	Turns  []Turn
}

// Mock is a scripted Client for tests and dry runs. Each Complete call
// consumes the next scripted reply; once the script is exhausted the last
// reply repeats.
type Mock struct {
	Replies []string
	Err     error // returned by every call when set
	Calls   []Call
}

// Name implements Client.
func (m *Mock) Name() string { return "mock" }

// Complete implements Client.
func (m *Mock) Complete(_ context.Context, system string, turns []Turn) (string, error) {
	m.Calls = append(m.Calls, Call{System: system, Turns: turns})
	if m.Err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, m.Err)
	}
	if len(m.Replies) == 0 {
		return "", fmt.Errorf("%w: mock has no scripted replies", ErrTransport)
	}
	i := len(m.Calls) - 1
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	return m.Replies[i], nil
}
