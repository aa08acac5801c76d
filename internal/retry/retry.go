// Package retry provides exponential backoff for transient completion-service
// failures. This is transport-level policy owned by the service clients; the
// generation pipeline's validation retries are a separate mechanism and never
// go through this package.
package retry

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

const (
	// DefaultBaseDelay is the base delay for exponential backoff.
	DefaultBaseDelay = 2 * time.Second
	// DefaultMaxJitterPercent is the maximum jitter percentage.
	DefaultMaxJitterPercent = 25
	// maxDelay caps a single backoff wait.
	maxDelay = time.Minute
)

// Config holds backoff configuration.
type Config struct {
	MaxRetries       int
	BaseDelay        time.Duration
	MaxJitterPercent int
}

// Operation is a completion call that can be retried.
type Operation func() (string, error)

// Execute runs op, retrying transient failures with exponential backoff and
// jitter. MaxRetries of zero means a single attempt. Non-retryable errors and
// context cancellation return immediately.
func Execute(ctx context.Context, cfg Config, op Operation) (string, error) {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxJitterPercent < 0 || cfg.MaxJitterPercent > 100 {
		cfg.MaxJitterPercent = DefaultMaxJitterPercent
	}

	var out string
	var err error
	for attempt := 0; ; attempt++ {
		out, err = op()
		if err == nil {
			return out, nil
		}
		if attempt >= cfg.MaxRetries || !IsRetryable(err) {
			return out, err
		}

		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(Delay(cfg.BaseDelay, attempt, cfg.MaxJitterPercent)):
		}
	}
}

// Delay returns the wait before the next attempt: base * 2^attempt plus up to
// maxJitterPercent% jitter, capped at one minute.
func Delay(base time.Duration, attempt int, maxJitterPercent int) time.Duration {
	delay := base * time.Duration(1<<attempt)
	if delay > maxDelay {
		delay = maxDelay
	}
	if maxJitterPercent > 0 {
		jitterRange := float64(delay) * float64(maxJitterPercent) / 100.0
		delay += time.Duration(rand.Float64() * jitterRange)
	}
	return delay
}

// retryablePatterns match transient service conditions.
var retryablePatterns = []string{
	"rate limit",
	"rate_limit",
	"timeout",
	"timed out",
	"deadline exceeded",
	"connection refused",
	"connection reset",
	"temporary failure",
	"service unavailable",
	"503",
	"502",
	"429",
	"overloaded",
	"too many requests",
}

// nonRetryablePatterns match conditions that will not improve on retry.
var nonRetryablePatterns = []string{
	"invalid",
	"not found",
	"unauthorized",
	"forbidden",
	"authentication",
	"bad request",
	"400",
	"401",
	"403",
	"404",
}

// IsRetryable reports whether an error looks transient. Unknown errors are
// not retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(msg, pattern) {
			return false
		}
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
