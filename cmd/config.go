package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/llm"

	_ "github.com/uilabs/architect/internal/llm/claude"
	_ "github.com/uilabs/architect/internal/llm/groq"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  `Show the configuration resolved from .architect/config.yaml and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}

		fmt.Printf("provider:     %s (available: %v)\n", cfg.Provider, llm.Available())
		model := cfg.Model
		if model == "" {
			model = "(provider default)"
		}
		fmt.Printf("model:        %s\n", model)
		fmt.Printf("maxRetries:   %d\n", cfg.MaxRetries)
		fmt.Printf("tokensPath:   %s\n", cfg.TokensPath)
		fmt.Printf("listen:       %s\n", cfg.Listen)
		fmt.Printf("sessions:     %s", cfg.Session.Backend)
		if cfg.Session.Backend == "sqlite" {
			fmt.Printf(" (%s)", cfg.Session.Path)
		}
		fmt.Println()
		fmt.Printf("transport:    %d retries, base delay %s\n", cfg.Transport.Retries, cfg.Transport.BaseDelay)

		envVar := config.APIKeyEnv(cfg.Provider)
		if os.Getenv(envVar) != "" {
			fmt.Printf("%s: set\n", envVar)
		} else {
			fmt.Printf("%s: NOT SET\n", envVar)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
