// Package architect drives the agentic generation pipeline: build prompts,
// call the completion service, lint the candidate, and feed hard errors back
// into bounded regeneration attempts.
package architect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uilabs/architect/internal/lint"
	"github.com/uilabs/architect/internal/llm"
	"github.com/uilabs/architect/internal/prompt"
	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"
)

// DefaultMaxRetries is the default number of self-correction attempts after
// the initial generation.
const DefaultMaxRetries = 2

// Config controls one pipeline instance.
type Config struct {
	// MaxRetries bounds self-correction: the pipeline performs at most
	// MaxRetries+1 generation attempts. Negative values mean the default.
	MaxRetries int

	// Observer watches the loop. Nil means no observation.
	Observer Observer
}

// Attempt is one iteration's state: candidate code, its findings, and the
// 0-based attempt index.
type Attempt struct {
	Index    int
	Code     string
	Findings []lint.Finding
}

// Result is the terminal pipeline artifact. It is always produced when
// generation itself succeeds, even if validation never passed.
type Result struct {
	Code     string
	Findings []lint.Finding // every finding from the final attempt
	Errors   []lint.Finding // error-severity subset
	Warnings []lint.Finding // warning-severity subset
	Attempts int            // generation attempts consumed
	Success  bool           // true iff the final attempt has zero errors
	Prompt   string         // the original user prompt
	Duration time.Duration  // wall-clock time for the whole run
}

// Pipeline is the generate-validate-correct loop bound to one completion
// client and one token set. It keeps no state between Run calls; concurrent
// Runs are safe because the token set is read-only.
type Pipeline struct {
	client   llm.Client
	tokens   *tokens.Set
	retries  int
	observer Observer
}

// New creates a pipeline.
func New(client llm.Client, set *tokens.Set, cfg Config) (*Pipeline, error) {
	if client == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if set == nil {
		return nil, fmt.Errorf("design token set is required")
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = DefaultMaxRetries
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Pipeline{client: client, tokens: set, retries: retries, observer: observer}, nil
}

// Run executes the pipeline once for a user prompt and optional conversation
// history. Validation failures drive the retry loop and always end in a
// Result; configuration and transport failures propagate as errors.
func (p *Pipeline) Run(ctx context.Context, userPrompt string, history []session.Turn) (*Result, error) {
	start := time.Now()
	system := prompt.System(p.tokens)
	user := prompt.User(userPrompt, history)
	total := p.retries + 1

	p.observer.RunStarted(p.client.Name(), userPrompt, total)

	// Explicit fold over the attempt budget: each attempt is a function of
	// the previous attempt's feedback, terminating early on success.
	var last Attempt
	feedback := ""
	for index := 0; index < total; index++ {
		attempt, err := p.attempt(ctx, index, system, user, feedback)
		if err != nil {
			p.observer.RunFailed(p.client.Name(), err)
			return nil, err
		}
		last = attempt

		errors, warnings := lint.Partition(attempt.Findings)
		p.observer.AttemptChecked(attempt, errors, warnings)

		if len(errors) == 0 {
			break
		}
		feedback = Feedback(errors)
	}

	errors, warnings := lint.Partition(last.Findings)
	result := &Result{
		Code:     last.Code,
		Findings: last.Findings,
		Errors:   errors,
		Warnings: warnings,
		Attempts: last.Index + 1,
		Success:  len(errors) == 0,
		Prompt:   userPrompt,
		Duration: time.Since(start),
	}
	p.observer.RunFinished(p.client.Name(), result)
	return result, nil
}

// attempt performs one generate+lint cycle.
func (p *Pipeline) attempt(ctx context.Context, index int, system, user, feedback string) (Attempt, error) {
	p.observer.AttemptStarted(index, p.retries+1)

	code, err := p.generate(ctx, system, user, feedback)
	if err != nil {
		return Attempt{}, err
	}

	return Attempt{
		Index:    index,
		Code:     code,
		Findings: lint.Check(code, p.tokens),
	}, nil
}

// generate performs a single completion call. On a retry the exchange is a
// short multi-turn conversation: the original request, a placeholder for the
// flawed attempt, and the corrective instruction.
func (p *Pipeline) generate(ctx context.Context, system, user, feedback string) (string, error) {
	turns := []llm.Turn{{Role: llm.RoleUser, Content: user}}
	if feedback != "" {
		turns = append(turns,
			llm.Turn{Role: llm.RoleAssistant, Content: "// previous attempt had errors"},
			llm.Turn{Role: llm.RoleUser, Content: "Fix these validation errors and regenerate the COMPLETE component:\n\n" + feedback},
		)
	}

	code, err := p.client.Complete(ctx, system, turns)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

// Feedback renders hard errors as the corrective text for the next attempt.
// Warnings never appear here: they are advisory and must not drive retries.
func Feedback(errors []lint.Finding) string {
	var sb strings.Builder
	sb.WriteString("VALIDATION ERRORS FROM LINTER:\n")
	sb.WriteString(strings.Join(lint.Strings(errors), "\n"))
	sb.WriteString("\n\nFix ALL errors above. Output ONLY the corrected raw TypeScript code.")
	return sb.String()
}
