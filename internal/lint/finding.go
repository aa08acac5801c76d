// Package lint implements the linter-agent: a battery of shallow structural
// and design-token compliance checks run against generated component code.
package lint

import "fmt"

// Severity classifies a finding. Errors block acceptance and drive the
// self-correction loop; warnings are advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifies which check produced a finding.
type Rule string

const (
	RuleStructure    Rule = "COMPONENT_STRUCTURE"
	RuleSyntax       Rule = "SYNTAX"
	RuleTokenColor   Rule = "DESIGN_TOKEN_COLOR"
	RuleTokenRadius  Rule = "DESIGN_TOKEN_RADIUS"
	RuleTokenFont    Rule = "DESIGN_TOKEN_FONT"
	RuleOutputFormat Rule = "OUTPUT_FORMAT"
)

// Finding is one validation result. Findings are plain values: constructing
// one never touches shared state.
type Finding struct {
	Rule     Rule     `json:"rule"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// String renders a finding in the form fed back to the model,
// e.g. "[ERROR] SYNTAX: Unclosed brackets: [{]".
func (f Finding) String() string {
	sev := "ERROR"
	if f.Severity == SeverityWarning {
		sev = "WARNING"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, f.Rule, f.Message)
}

func errorf(rule Rule, format string, args ...any) Finding {
	return Finding{Rule: rule, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func warnf(rule Rule, format string, args ...any) Finding {
	return Finding{Rule: rule, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// Partition splits findings into hard errors and warnings, preserving order.
func Partition(findings []Finding) (errors, warnings []Finding) {
	for _, f := range findings {
		if f.Severity == SeverityError {
			errors = append(errors, f)
		} else {
			warnings = append(warnings, f)
		}
	}
	return errors, warnings
}

// Strings renders each finding with Finding.String.
func Strings(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.String()
	}
	return out
}
