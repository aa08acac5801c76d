package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "architect",
	Short: "Architect - design-system-guided UI component generator",
	Long: `Architect generates Angular components from natural-language prompts,
validates them against a design-token specification, and self-corrects
failed attempts with linter feedback.

Workflow:
  architect generate "a login card"   Generate a component from a prompt
  architect lint component.ts         Lint existing code against the tokens
  architect serve                     Expose the pipeline over HTTP

Commands:
  generate    Run the generate-validate-correct pipeline once
  lint        Check code against the design-token rules
  serve       Start the HTTP API
  tokens      Print the resolved design-token set
  config      Show effective configuration
  version     Show version info

Provider API keys are read from the environment (GROQ_API_KEY,
ANTHROPIC_API_KEY); a .env file in the working directory is loaded
automatically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
