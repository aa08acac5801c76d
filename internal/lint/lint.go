package lint

import (
	"regexp"
	"strings"

	"github.com/uilabs/architect/internal/tokens"
)

var (
	exportedClassRe = regexp.MustCompile(`export\s+class\s+\w+`)
	hexColorRe      = regexp.MustCompile(`#([0-9a-fA-F]{3,8})\b`)
	radiusRe        = regexp.MustCompile("border-?[Rr]adius[:\\s]+([^;\"'`}]+)")
	fontFamilyRe    = regexp.MustCompile("font-family[:\\s]+([^;\"'`}]+)")
	pxValueRe       = regexp.MustCompile(`^\d+px$`)
)

// Check runs every lint rule against the candidate code and returns the
// findings in rule order. All rules always run; no rule suppresses another.
// Check is a pure function of (code, set) and keeps no state between calls.
func Check(code string, set *tokens.Set) []Finding {
	var findings []Finding
	findings = append(findings, checkStructure(code)...)
	findings = append(findings, checkBracketBalance(code)...)
	findings = append(findings, checkColors(code, set)...)
	findings = append(findings, checkRadii(code, set)...)
	findings = append(findings, checkFonts(code, set)...)
	findings = append(findings, checkOutputFormat(code)...)
	return findings
}

// checkStructure verifies the candidate looks like a complete Angular
// component: decorator, selector, template, and an exported class.
func checkStructure(code string) []Finding {
	var findings []Finding
	if !strings.Contains(code, "@Component") {
		findings = append(findings, errorf(RuleStructure, "Missing @Component decorator"))
	}
	if !strings.Contains(code, "selector:") {
		findings = append(findings, errorf(RuleStructure, "Missing selector in @Component"))
	}
	if !strings.Contains(code, "template:") && !strings.Contains(code, "templateUrl:") {
		findings = append(findings, errorf(RuleStructure, "Missing template in @Component"))
	}
	if !exportedClassRe.MatchString(code) {
		findings = append(findings, errorf(RuleStructure, "Missing exported class"))
	}
	return findings
}

var bracketPairs = map[byte]byte{')': '(', '}': '{', ']': '['}

// checkBracketBalance scans the code tracking (), {}, and [] nesting while
// skipping bracket characters inside ', ", and ` string literals. A mismatched
// closing bracket aborts the scan (everything after it is noise); brackets
// still open at end of text are reported as one finding.
func checkBracketBalance(code string) []Finding {
	var stack []byte
	inString := false
	var stringChar byte

	for i := 0; i < len(code); i++ {
		ch := code[i]
		if inString {
			if ch == '\\' && i+1 < len(code) {
				i++
				continue
			}
			if ch == stringChar {
				inString = false
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			inString = true
			stringChar = ch
		case '(', '{', '[':
			stack = append(stack, ch)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != bracketPairs[ch] {
				return []Finding{errorf(RuleSyntax, "Unmatched closing bracket %q at position %d", string(ch), i)}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		open := make([]string, len(stack))
		for i, ch := range stack {
			open[i] = string(ch)
		}
		return []Finding{errorf(RuleSyntax, "Unclosed brackets: [%s]", strings.Join(open, " "))}
	}
	return nil
}

// checkColors flags every hex color literal that is not in the allowed set.
// Three-digit short form is normalized to six digits before comparison, and
// comparison is case-insensitive.
func checkColors(code string, set *tokens.Set) []Finding {
	allowed := make(map[string]bool)
	for _, hex := range set.AllowedColors() {
		allowed[hex] = true
	}

	var findings []Finding
	for _, m := range hexColorRe.FindAllStringSubmatch(code, -1) {
		findings = append(findings, checkColorLiteral(m[1], allowed, set)...)
	}
	return findings
}

func checkColorLiteral(digits string, allowed map[string]bool, set *tokens.Set) []Finding {
	full := "#" + digits
	if len(digits) == 3 {
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		full = b.String()
	}
	if allowed[strings.ToLower(full)] {
		return nil
	}
	return []Finding{errorf(RuleTokenColor,
		"Color '%s' is NOT in the design system. Allowed: [%s]",
		full, strings.Join(set.AllowedColors(), " "))}
}

// checkRadii warns on every border-radius pixel value outside the allowed set.
func checkRadii(code string, set *tokens.Set) []Finding {
	allowed := make(map[string]bool)
	for _, px := range set.AllowedRadii() {
		allowed[px] = true
	}

	var findings []Finding
	for _, m := range radiusRe.FindAllStringSubmatch(code, -1) {
		for _, val := range strings.Fields(strings.TrimSpace(m[1])) {
			val = strings.TrimRight(val, `;,"'`)
			if pxValueRe.MatchString(val) && !allowed[val] {
				findings = append(findings, warnf(RuleTokenRadius,
					"border-radius '%s' not in design system. Allowed px values: [%s]",
					val, strings.Join(set.AllowedRadii(), " ")))
			}
		}
	}
	return findings
}

// checkFonts warns on font-family declarations that name neither of the two
// configured families.
func checkFonts(code string, set *tokens.Set) []Finding {
	families := set.FontFamilies()

	var findings []Finding
	for _, m := range fontFamilyRe.FindAllStringSubmatch(code, -1) {
		value := m[1]
		lower := strings.ToLower(value)
		ok := false
		for _, fam := range families {
			if strings.Contains(lower, strings.ToLower(fam)) {
				ok = true
				break
			}
		}
		if !ok {
			clean := strings.Trim(strings.TrimSpace(value), `'"`)
			findings = append(findings, warnf(RuleTokenFont,
				"Font '%s' not in design system. Use '%s' or '%s'",
				clean, families[0], families[1]))
		}
	}
	return findings
}

// checkOutputFormat rejects output wrapped in markdown code fences.
func checkOutputFormat(code string) []Finding {
	head := code
	if len(head) > 50 {
		head = head[:50]
	}
	if strings.HasPrefix(strings.TrimSpace(code), "```") || strings.Contains(head, "```") {
		return []Finding{errorf(RuleOutputFormat, "Code wrapped in markdown fences - output raw code only")}
	}
	return nil
}
