package prompt

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"
)

func testSet(t *testing.T) *tokens.Set {
	t.Helper()
	set, err := tokens.Parse([]byte(`{
		"colors": {"primary": "#6366f1", "secondary": "#06b6d4"},
		"borders": {"sm": "4px", "md": "8px"},
		"typography": {"font-family-sans": "Inter", "font-family-mono": "JetBrains Mono"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestSystemEmbedsTokens(t *testing.T) {
	sys := System(testSet(t))

	for _, want := range []string{
		"#6366f1", "#06b6d4", // token values verbatim
		"4px", "8px",
		"Inter", "JetBrains Mono",
		"no markdown fences",
		"kebab-case",
		"@Component decorator",
		"import { Component } from '@angular/core';",
	} {
		if !strings.Contains(sys, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestSystemDeterministic(t *testing.T) {
	set := testSet(t)
	first := System(set)
	for i := 0; i < 5; i++ {
		if System(set) != first {
			t.Fatal("System must be stable across calls")
		}
	}
}

func TestUserWithoutHistory(t *testing.T) {
	if got := User("a blue button", nil); got != "a blue button" {
		t.Errorf("no history should return the request unchanged, got %q", got)
	}
	if got := User("a blue button", []session.Turn{}); got != "a blue button" {
		t.Errorf("empty history should return the request unchanged, got %q", got)
	}
}

func TestUserWithHistory(t *testing.T) {
	history := []session.Turn{
		{Role: session.RoleUser, Content: "a login card"},
		{Role: session.RoleAssistant, Content: "@Component({...})"},
	}
	got := User("make it dark", history)

	if !strings.HasPrefix(got, "Previous conversation context:\n") {
		t.Errorf("history prompt should be labeled as prior context, got %q", got)
	}
	if !strings.Contains(got, "[Previous turn - user]: a login card...") {
		t.Errorf("missing user turn preview: %q", got)
	}
	if !strings.Contains(got, "[Previous turn - assistant]: @Component({...})...") {
		t.Errorf("missing assistant turn preview: %q", got)
	}
	if !strings.HasSuffix(got, "New request: make it dark") {
		t.Errorf("new request should come last: %q", got)
	}
}

func TestUserHistoryWindow(t *testing.T) {
	var history []session.Turn
	for i := 0; i < 7; i++ {
		history = append(history, session.Turn{Role: session.RoleUser, Content: fmt.Sprintf("request %d", i)})
	}
	got := User("next", history)

	for i := 0; i < 3; i++ {
		if strings.Contains(got, fmt.Sprintf("request %d...", i)) {
			t.Errorf("turn %d is outside the %d-turn window but was embedded", i, HistoryWindow)
		}
	}
	for i := 3; i < 7; i++ {
		if !strings.Contains(got, fmt.Sprintf("request %d...", i)) {
			t.Errorf("turn %d is inside the window but missing", i)
		}
	}
}

func TestUserTruncatesLongTurns(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := User("next", []session.Turn{{Role: session.RoleUser, Content: long}})

	if strings.Contains(got, strings.Repeat("x", HistoryPreviewLen+1)) {
		t.Errorf("turn content should be truncated to %d runes", HistoryPreviewLen)
	}
	if !strings.Contains(got, strings.Repeat("x", HistoryPreviewLen)+"...") {
		t.Error("truncated turn should keep its ellipsis marker")
	}
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	// 300 multi-byte runes; a byte-wise cut would split one in half.
	long := strings.Repeat("é", 300)
	got := truncate(long, HistoryPreviewLen)

	if !utf8.ValidString(got) {
		t.Fatal("truncate split a multi-byte rune")
	}
	if utf8.RuneCountInString(got) != HistoryPreviewLen {
		t.Errorf("want %d runes, got %d", HistoryPreviewLen, utf8.RuneCountInString(got))
	}
}
