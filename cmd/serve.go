package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/metrics"
	"github.com/uilabs/architect/internal/server"
	"github.com/uilabs/architect/internal/session"
	"github.com/uilabs/architect/internal/tokens"

	// Register available providers
	_ "github.com/uilabs/architect/internal/llm/claude"
	_ "github.com/uilabs/architect/internal/llm/groq"
)

// Serve command flags
var (
	serveListen string
	serveDryRun bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation pipeline over HTTP",
	Long: `Start the HTTP API exposing the generation pipeline.

Routes:
  POST   /generate       Run the pipeline ({"prompt": ..., "session_id": ...})
  GET    /tokens         The design-token set
  DELETE /session/{id}   Clear a conversation session
  GET    /health         Liveness probe
  GET    /metrics        Prometheus metrics

Sessions hold multi-turn conversation context per session_id; the backend
(memory or sqlite) is chosen in .architect/config.yaml.

Examples:
  architect serve
  architect serve --listen :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveDryRun, "dry-run", false, "Use a canned reply instead of calling a provider")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	set, err := tokens.Load(cfg.TokensPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg, serveDryRun)
	if err != nil {
		return err
	}

	var store session.Store
	switch cfg.Session.Backend {
	case "sqlite":
		db, err := session.OpenSQLite(cfg.Session.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	default:
		store = session.NewMemory()
	}

	pipe, err := architect.New(client, set, architect.Config{
		MaxRetries: cfg.MaxRetries,
		Observer:   metrics.NewRecorder(),
	})
	if err != nil {
		return err
	}

	srv, err := server.New(pipe, set, store)
	if err != nil {
		return err
	}

	log.Printf("architect listening on %s (provider=%s, sessions=%s)",
		cfg.Listen, client.Name(), cfg.Session.Backend)
	return http.ListenAndServe(cfg.Listen, srv.Routes())
}
