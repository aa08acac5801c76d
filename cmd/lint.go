package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/display"
	"github.com/uilabs/architect/internal/lint"
	"github.com/uilabs/architect/internal/tokens"
)

var lintTokens string

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Lint component code against the design tokens",
	Long: `Run the linter-agent checks against existing component code.

Checks structure, bracket balance, color compliance, border-radius and
font-family compliance, and output format. Reads from a file, or from
stdin when no file (or "-") is given.

Examples:
  architect lint button.component.ts
  cat button.component.ts | architect lint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintTokens, "tokens", "", "Path to the design-token JSON file")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if lintTokens != "" {
		cfg.TokensPath = lintTokens
	}

	set, err := tokens.Load(cfg.TokensPath)
	if err != nil {
		return err
	}

	var code []byte
	if len(args) == 0 || args[0] == "-" {
		code, err = io.ReadAll(os.Stdin)
	} else {
		code, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	findings := lint.Check(string(code), set)
	errors, warnings := lint.Partition(findings)

	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "%s %s\n", display.StyleWarning.Render("⚠"), w.String())
	}
	for _, e := range errors {
		fmt.Fprintf(os.Stdout, "%s %s\n", display.StyleError.Render("✗"), e.String())
	}

	if len(errors) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s\n", display.StyleError.Render(
			fmt.Sprintf("%d error(s), %d warning(s)", len(errors), len(warnings))))
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "%s\n", display.StyleSuccess.Render(
		fmt.Sprintf("✓ Passed with %d warning(s)", len(warnings))))
	return nil
}
