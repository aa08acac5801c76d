// Package llm defines the completion-service boundary: a provider-agnostic
// client interface plus a registry providers hook into from their init
// functions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrTransport marks a completion-service failure (network, auth, provider
// outage). Transport errors propagate to the caller; the generation pipeline
// never converts them into validation retries.
var ErrTransport = errors.New("completion service error")

// Turn is one message in a completion exchange.
type Turn struct {
	Role    string
	Content string
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is a text-completion service. Complete sends the system prompt plus
// the ordered turns and returns the model's reply text.
type Client interface {
	// Name returns the provider identifier (e.g., "groq", "claude").
	Name() string

	// Complete performs one completion call. Failures wrap ErrTransport.
	Complete(ctx context.Context, system string, turns []Turn) (string, error)
}

// Config holds provider-agnostic client settings. Zero values mean provider
// defaults.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int

	// TransportRetries enables client-side backoff on rate-limit and 5xx
	// responses. Zero disables it; the call is then made exactly once.
	TransportRetries int
	RetryBaseDelay   time.Duration
}

// constructors maps provider names to their factories. Providers register
// themselves via Register from an init function.
var constructors = make(map[string]func(Config) (Client, error))

// Register registers a provider constructor by name.
func Register(name string, constructor func(Config) (Client, error)) {
	constructors[strings.ToLower(name)] = constructor
}

// New creates a client by provider name.
func New(name string, cfg Config) (Client, error) {
	constructor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (supported: %s)", name, strings.Join(Available(), ", "))
	}
	return constructor(cfg)
}

// Available returns the registered provider names, sorted.
func Available() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
