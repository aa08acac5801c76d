package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/tokens"
)

var tokensPathFlag string

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Print the resolved design-token set",
	Long: `Load and print the design-token set the linter enforces.

Useful for verifying which colors, border radii, and fonts generated
components are allowed to use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		if tokensPathFlag != "" {
			cfg.TokensPath = tokensPathFlag
		}
		set, err := tokens.Load(cfg.TokensPath)
		if err != nil {
			return err
		}
		fmt.Println(set.JSON())
		return nil
	},
}

func init() {
	tokensCmd.Flags().StringVar(&tokensPathFlag, "tokens", "", "Path to the design-token JSON file")
	rootCmd.AddCommand(tokensCmd)
}
