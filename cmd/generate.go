package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uilabs/architect/internal/architect"
	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/display"
	"github.com/uilabs/architect/internal/tokens"

	// Register available providers
	_ "github.com/uilabs/architect/internal/llm/claude"
	_ "github.com/uilabs/architect/internal/llm/groq"
)

// Generate command flags
var (
	generateProvider string
	generateModel    string
	generateRetries  int
	generateTokens   string
	generateDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a component from a prompt",
	Long: `Generate an Angular component from a natural-language prompt.

The pipeline calls the configured model, lints the candidate against the
design-token set, and feeds hard errors back for self-correction until the
code passes or the attempt budget runs out.

Progress goes to stderr; the generated component goes to stdout, so the
output can be piped straight into a file:

  architect generate "a blue button" > button.component.ts
  architect generate -p claude "a pricing table"
  architect generate --retries 4 "a login card with glassmorphism"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateProvider, "provider", "p", "", "Completion provider (groq, claude)")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Model override")
	generateCmd.Flags().IntVar(&generateRetries, "retries", -1, "Self-correction attempts after the first (default from config)")
	generateCmd.Flags().StringVar(&generateTokens, "tokens", "", "Path to the design-token JSON file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Use a canned reply instead of calling a provider")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if generateProvider != "" {
		cfg.Provider = generateProvider
	}
	if generateModel != "" {
		cfg.Model = generateModel
	}
	if generateRetries >= 0 {
		cfg.MaxRetries = generateRetries
	}
	if generateTokens != "" {
		cfg.TokensPath = generateTokens
	}

	set, err := tokens.Load(cfg.TokensPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg, generateDryRun)
	if err != nil {
		return err
	}

	pipe, err := architect.New(client, set, architect.Config{
		MaxRetries: cfg.MaxRetries,
		Observer:   display.New(os.Stderr),
	})
	if err != nil {
		return err
	}

	result, err := pipe.Run(cmd.Context(), strings.Join(args, " "), nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, result.Code)

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
