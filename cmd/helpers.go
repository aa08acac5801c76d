package cmd

import (
	"fmt"
	"os"

	"github.com/uilabs/architect/internal/config"
	"github.com/uilabs/architect/internal/llm"
)

// buildClient constructs the configured completion client, or a scripted
// mock when dryRun is set.
func buildClient(cfg config.Config, dryRun bool) (llm.Client, error) {
	if dryRun {
		return &llm.Mock{Replies: []string{dryRunComponent}}, nil
	}

	envVar := config.APIKeyEnv(cfg.Provider)
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set (put it in the environment or a .env file)", envVar)
	}

	return llm.New(cfg.Provider, llm.Config{
		APIKey:           apiKey,
		Model:            cfg.Model,
		BaseURL:          cfg.BaseURL,
		Temperature:      cfg.Temperature,
		MaxTokens:        cfg.MaxTokens,
		TransportRetries: cfg.Transport.Retries,
		RetryBaseDelay:   cfg.Transport.BaseDelay,
	})
}

// dryRunComponent is what `--dry-run` returns instead of calling a provider.
const dryRunComponent = `import { Component } from '@angular/core';

@Component({
  selector: 'app-dry-run',
  template: ` + "`" + `<div>dry run</div>` + "`" + `,
})
export class DryRunComponent {}`
