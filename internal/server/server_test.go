package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/lint"
	"github.com/uilabs/architect/internal/llm"
	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"
)

// fakeRunner returns a canned result and records what it was asked.
type fakeRunner struct {
	result  *architect.Result
	err     error
	prompts []string
	history [][]session.Turn
}

func (f *fakeRunner) Run(_ context.Context, prompt string, history []session.Turn) (*architect.Result, error) {
	f.prompts = append(f.prompts, prompt)
	f.history = append(f.history, history)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testSet(t *testing.T) *tokens.Set {
	t.Helper()
	set, err := tokens.Parse([]byte(`{
		"colors": {"primary": "#6366f1"},
		"borders": {"sm": "4px"},
		"typography": {"font-family-sans": "Inter", "font-family-mono": "JetBrains Mono"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func newTestServer(t *testing.T, runner Runner) (*Server, *session.Memory) {
	t.Helper()
	store := session.NewMemory()
	srv, err := New(runner, testSet(t), store)
	if err != nil {
		t.Fatal(err)
	}
	return srv, store
}

func successResult() *architect.Result {
	warning := lint.Finding{Rule: lint.RuleTokenRadius, Message: "off scale", Severity: lint.SeverityWarning}
	return &architect.Result{
		Code:     "export class ButtonComponent {}",
		Findings: []lint.Finding{warning},
		Warnings: []lint.Finding{warning},
		Attempts: 1,
		Success:  true,
		Prompt:   "a button",
	}
}

func TestGenerate(t *testing.T) {
	runner := &fakeRunner{result: successResult()}
	srv, store := newTestServer(t, runner)

	body := `{"prompt": "a blue button", "session_id": "s1"}`
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Attempts != 1 || resp.SessionID != "s1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Warnings) != 1 || len(resp.HardErrors) != 0 {
		t.Errorf("finding subsets wrong: %+v", resp)
	}

	// The exchange is appended to the session.
	history, _ := store.Get(context.Background(), "s1")
	if len(history) != 2 {
		t.Fatalf("want 2 turns stored, got %d", len(history))
	}
	if history[0].Role != session.RoleUser || history[0].Content != "a blue button" {
		t.Errorf("user turn: %+v", history[0])
	}
	if history[1].Role != session.RoleAssistant {
		t.Errorf("assistant turn: %+v", history[1])
	}
}

func TestGeneratePassesHistoryToPipeline(t *testing.T) {
	runner := &fakeRunner{result: successResult()}
	srv, store := newTestServer(t, runner)

	seed := []session.Turn{{Role: session.RoleUser, Content: "a login card"}}
	if err := store.Put(context.Background(), "s1", seed); err != nil {
		t.Fatal(err)
	}

	body := `{"prompt": "make it dark", "session_id": "s1"}`
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	if len(runner.history) != 1 || len(runner.history[0]) != 1 {
		t.Fatalf("pipeline should receive the stored history, got %+v", runner.history)
	}
	if runner.history[0][0].Content != "a login card" {
		t.Errorf("wrong history: %+v", runner.history[0])
	}
}

func TestGenerateAssignsSessionID(t *testing.T) {
	runner := &fakeRunner{result: successResult()}
	srv, _ := newTestServer(t, runner)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt": "x"}`)))

	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.SessionID == "" {
		t.Error("blank session_id should be assigned a fresh id")
	}
}

func TestGenerateTruncatesStoredCode(t *testing.T) {
	long := strings.Repeat("x", 2000)
	runner := &fakeRunner{result: &architect.Result{Code: long, Attempts: 1, Success: true}}
	srv, store := newTestServer(t, runner)

	body := `{"prompt": "big", "session_id": "s1"}`
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	history, _ := store.Get(context.Background(), "s1")
	if len(history[1].Content) != codePreviewLen {
		t.Errorf("stored assistant turn should be capped at %d chars, got %d", codePreviewLen, len(history[1].Content))
	}

	// The response itself carries the full code.
	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Code) != 2000 {
		t.Errorf("response code should not be truncated, got %d chars", len(resp.Code))
	}
}

func TestGenerateStoredPreviewKeepsRunesIntact(t *testing.T) {
	// Multi-byte content must be cut on a rune boundary, never mid-character.
	long := strings.Repeat("é", 600)
	runner := &fakeRunner{result: &architect.Result{Code: long, Attempts: 1, Success: true}}
	srv, store := newTestServer(t, runner)

	body := `{"prompt": "accented", "session_id": "s1"}`
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

	history, _ := store.Get(context.Background(), "s1")
	stored := history[1].Content
	if !utf8.ValidString(stored) {
		t.Error("stored preview must remain valid UTF-8")
	}
	if got := utf8.RuneCountInString(stored); got != codePreviewLen {
		t.Errorf("stored preview should hold %d runes, got %d", codePreviewLen, got)
	}
}

func TestGenerateBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{result: successResult()})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"prompt": `},
		{"missing prompt", `{"session_id": "s1"}`},
		{"blank prompt", `{"prompt": "   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("want 400, got %d", rec.Code)
			}
		})
	}
}

func TestGenerateTransportError(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("%w: groq: connection refused", llm.ErrTransport)}
	srv, _ := newTestServer(t, runner)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt": "x"}`)))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("transport failure should map to 502, got %d", rec.Code)
	}
}

func TestTokensEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{result: successResult()})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tokens", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var set tokens.Set
	if err := json.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatal(err)
	}
	if set.Colors["primary"] != "#6366f1" {
		t.Errorf("token set not served verbatim: %+v", set)
	}
}

func TestSessionDelete(t *testing.T) {
	srv, store := newTestServer(t, &fakeRunner{result: successResult()})
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []session.Turn{{Role: session.RoleUser, Content: "x"}}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/session/s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if turns, _ := store.Get(ctx, "s1"); len(turns) != 0 {
		t.Error("session should be cleared")
	}

	// Deleting an unknown session is still a 200, matching Clear semantics.
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/session/unknown", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("unknown session delete should be a no-op 200, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{result: successResult()})
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{result: successResult()})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/generate", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight should return 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{result: successResult()})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/generate"},
		{http.MethodPost, "/tokens"},
		{http.MethodGet, "/session/s1"},
	} {
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: want 405, got %d", tc.method, tc.path, rec.Code)
		}
	}
}
