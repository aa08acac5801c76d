// Package display renders styled pipeline progress to a terminal. It
// implements architect.Observer so the CLI can watch the loop without the
// pipeline knowing about terminals.
package display

import (
	"fmt"
	"io"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/lint"
)

// Display writes formatted pipeline progress.
type Display struct {
	out io.Writer
}

// New creates a Display writing to out.
func New(out io.Writer) *Display {
	return &Display{out: out}
}

// RunStarted implements architect.Observer.
func (d *Display) RunStarted(provider, userPrompt string, maxAttempts int) {
	fmt.Fprintln(d.out, HeaderBox().Render(
		StyleTitle.Render("Component Architect")+"\n"+
			StyleMuted.Render(fmt.Sprintf("provider: %s  budget: %d attempts", provider, maxAttempts))))
	fmt.Fprintf(d.out, "%s %s\n", StyleInfo.Render("Generating:"), userPrompt)
}

// AttemptStarted implements architect.Observer.
func (d *Display) AttemptStarted(index, total int) {
	fmt.Fprintf(d.out, "\n%s\n", StyleInfo.Render(fmt.Sprintf("Attempt %d/%d: calling model...", index+1, total)))
}

// AttemptChecked implements architect.Observer.
func (d *Display) AttemptChecked(attempt architect.Attempt, errors, warnings []lint.Finding) {
	fmt.Fprintf(d.out, "%s\n", StyleMuted.Render(fmt.Sprintf("Generated %d characters, linting...", len(attempt.Code))))

	for _, w := range warnings {
		fmt.Fprintf(d.out, "  %s %s\n", StyleWarning.Render("⚠"), w.String())
	}
	if len(errors) == 0 {
		fmt.Fprintf(d.out, "%s\n", StyleSuccess.Render(fmt.Sprintf("✓ Validation passed (%d warnings)", len(warnings))))
		return
	}
	fmt.Fprintf(d.out, "%s\n", StyleError.Render(fmt.Sprintf("✗ Validation failed - %d error(s):", len(errors))))
	for _, e := range errors {
		fmt.Fprintf(d.out, "  %s %s\n", StyleError.Render("✗"), e.String())
	}
}

// RunFinished implements architect.Observer.
func (d *Display) RunFinished(_ string, result *architect.Result) {
	fmt.Fprintln(d.out)
	if result.Success {
		fmt.Fprintf(d.out, "%s\n", StyleSuccess.Render(
			fmt.Sprintf("✓ Done in %d attempt(s), %d warning(s)", result.Attempts, len(result.Warnings))))
		return
	}
	fmt.Fprintf(d.out, "%s\n", StyleWarning.Render(
		fmt.Sprintf("⚠ Budget exhausted after %d attempts; returning best effort with %d error(s)",
			result.Attempts, len(result.Errors))))
}

// RunFailed implements architect.Observer.
func (d *Display) RunFailed(_ string, err error) {
	fmt.Fprintf(d.out, "%s\n", StyleError.Render(fmt.Sprintf("✗ %v", err)))
}
