// Package prompt builds the system and user prompts for component generation.
// Both builders are pure functions: identical inputs yield identical strings.
package prompt

import (
	"fmt"
	"strings"

	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"
)

const (
	// HistoryWindow is how many trailing conversation turns are embedded
	// into a new prompt.
	HistoryWindow = 4
	// HistoryPreviewLen caps each embedded turn's content, in runes.
	HistoryPreviewLen = 200
)

// System produces the system instruction: the full token set serialized
// verbatim plus the output rules the linter will enforce.
func System(set *tokens.Set) string {
	return fmt.Sprintf(`You are an expert Angular/TypeScript developer and UI designer.
Your job is to generate COMPLETE, VALID Angular components using Tailwind CSS inline styles.

=== DESIGN SYSTEM (STRICT - YOU MUST USE THESE TOKENS) ===
%s

=== RULES ===
1. Output ONLY raw code - no markdown fences, no explanations, no comments outside code.
2. Generate a SINGLE self-contained Angular component as a TypeScript file.
3. Use ONLY colors from the design system (allowed: %s).
4. Use ONLY border-radius values from the design system (allowed: %s).
5. Font must be '%s' or '%s' only.
6. All brackets/braces/parentheses must be properly closed.
7. Component selector must be kebab-case (e.g., app-login-card).
8. Include @Component decorator with selector, template, and styles.
9. Use inline template strings (no separate HTML file reference).
10. The component must be visually polished and match the user's description exactly.

=== OUTPUT FORMAT ===
Start directly with: import { Component } from '@angular/core';
End with the exported class. Nothing else.`,
		set.JSON(),
		strings.Join(set.AllowedColors(), ", "),
		strings.Join(set.AllowedRadii(), ", "),
		set.Typography.FontFamilySans,
		set.Typography.FontFamilyMono)
}

// User produces the user-facing prompt. A non-empty history is compressed
// into a labeled preview of the last HistoryWindow turns ahead of the new
// request; a nil or empty history yields the request unchanged.
func User(request string, history []session.Turn) string {
	if len(history) == 0 {
		return request
	}

	window := history
	if len(window) > HistoryWindow {
		window = window[len(window)-HistoryWindow:]
	}

	var sb strings.Builder
	sb.WriteString("Previous conversation context:\n")
	for _, turn := range window {
		sb.WriteString(fmt.Sprintf("[Previous turn - %s]: %s...\n", turn.Role, truncate(turn.Content, HistoryPreviewLen)))
	}
	sb.WriteString("\nNew request: ")
	sb.WriteString(request)
	return sb.String()
}

// truncate cuts s to at most n runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
