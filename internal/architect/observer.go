package architect

import "github.com/uilabs/architect/internal/lint"

// Observer watches a pipeline run. Implementations must be safe for
// concurrent use when the pipeline is shared across requests.
type Observer interface {
	// RunStarted fires once per Run with the attempt budget.
	RunStarted(provider, userPrompt string, maxAttempts int)

	// AttemptStarted fires before each generation call.
	AttemptStarted(index, total int)

	// AttemptChecked fires after each attempt is linted.
	AttemptChecked(attempt Attempt, errors, warnings []lint.Finding)

	// RunFinished fires when a Result is produced, successful or not.
	RunFinished(provider string, result *Result)

	// RunFailed fires when the run aborts on a transport failure.
	RunFailed(provider string, err error)
}

type nopObserver struct{}

func (nopObserver) RunStarted(string, string, int)                         {}
func (nopObserver) AttemptStarted(int, int)                                {}
func (nopObserver) AttemptChecked(Attempt, []lint.Finding, []lint.Finding) {}
func (nopObserver) RunFinished(string, *Result)                            {}
func (nopObserver) RunFailed(string, error)                                {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) RunStarted(provider, userPrompt string, maxAttempts int) {
	for _, o := range m {
		o.RunStarted(provider, userPrompt, maxAttempts)
	}
}

func (m MultiObserver) AttemptStarted(index, total int) {
	for _, o := range m {
		o.AttemptStarted(index, total)
	}
}

func (m MultiObserver) AttemptChecked(attempt Attempt, errors, warnings []lint.Finding) {
	for _, o := range m {
		o.AttemptChecked(attempt, errors, warnings)
	}
}

func (m MultiObserver) RunFinished(provider string, result *Result) {
	for _, o := range m {
		o.RunFinished(provider, result)
	}
}

func (m MultiObserver) RunFailed(provider string, err error) {
	for _, o := range m {
		o.RunFailed(provider, err)
	}
}
