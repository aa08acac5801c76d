// Package server exposes the generation pipeline over HTTP. It is a thin
// transport wrapper: routing, CORS, session bookkeeping, and JSON shapes
// live here; generation semantics live in the architect package.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/lint"
	"github.com/uilabs/architect/internal/llm"
	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"
)

// codePreviewLen caps how much generated code is stored per assistant turn,
// in runes.
const codePreviewLen = 500

// Runner abstracts the pipeline for the handlers (and their tests).
type Runner interface {
	Run(ctx context.Context, userPrompt string, history []session.Turn) (*architect.Result, error)
}

// Server wires the pipeline, token set, and session store to HTTP routes.
type Server struct {
	runner Runner
	tokens *tokens.Set
	store  session.Store
}

// New creates a Server.
func New(runner Runner, set *tokens.Set, store session.Store) (*Server, error) {
	if runner == nil {
		return nil, errors.New("pipeline runner required")
	}
	if set == nil {
		return nil, errors.New("token set required")
	}
	if store == nil {
		return nil, errors.New("session store required")
	}
	return &Server{runner: runner, tokens: set, store: store}, nil
}

// Routes returns the handler tree with CORS applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/tokens", s.handleTokens)
	mux.HandleFunc("/session/", s.handleSession)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return corsMiddleware(mux)
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
}

type generateResponse struct {
	Code       string   `json:"code"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
	HardErrors []string `json:"hard_errors"`
	Attempts   int      `json:"attempts"`
	Success    bool     `json:"success"`
	SessionID  string   `json:"session_id"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	ctx := r.Context()
	history, err := s.store.Get(ctx, req.SessionID)
	if err != nil {
		http.Error(w, "session store failure", http.StatusInternalServerError)
		return
	}

	result, err := s.runner.Run(ctx, req.Prompt, history)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrTransport):
			http.Error(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, tokens.ErrConfig):
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	preview := result.Code
	if runes := []rune(preview); len(runes) > codePreviewLen {
		// Cut on a rune boundary so the stored turn never ends mid-character.
		preview = string(runes[:codePreviewLen])
	}
	err = session.Append(ctx, s.store, req.SessionID,
		session.Turn{Role: session.RoleUser, Content: req.Prompt},
		session.Turn{Role: session.RoleAssistant, Content: preview},
	)
	if err != nil {
		// The result is still good; losing one history update is not worth
		// failing the request over.
		log.Printf("session %s: failed to append history: %v", req.SessionID, err)
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Code:       result.Code,
		Errors:     lint.Strings(result.Findings),
		Warnings:   lint.Strings(result.Warnings),
		HardErrors: lint.Strings(result.Errors),
		Attempts:   result.Attempts,
		Success:    result.Success,
		SessionID:  req.SessionID,
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.tokens)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/session/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "session id required", http.StatusBadRequest)
		return
	}
	if err := s.store.Clear(r.Context(), id); err != nil {
		http.Error(w, "session store failure", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"cleared": id})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// corsMiddleware allows cross-origin calls from any frontend, mirroring the
// permissive policy the UI expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
