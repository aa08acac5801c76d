// Package claude provides a completion client backed by the Anthropic
// Messages API.
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/uilabs/architect/internal/llm"
	"github.com/uilabs/architect/internal/retry"
)

// DefaultModel is the default Claude model for component generation.
const DefaultModel = "claude-sonnet-4-20250514"

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 4096
)

func init() {
	llm.Register("claude", New)
}

// Client implements llm.Client against the Anthropic Messages API.
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int
	retryCfg    retry.Config
}

// New creates a Claude client from the given config.
func New(cfg llm.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: API key is required (set ANTHROPIC_API_KEY)")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:      anthropic.NewClient(opts...),
		model:       anthropic.Model(model),
		temperature: temperature,
		maxTokens:   maxTokens,
		retryCfg: retry.Config{
			MaxRetries: cfg.TransportRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		},
	}, nil
}

// Name implements llm.Client.
func (c *Client) Name() string { return "claude" }

// Complete implements llm.Client. The system prompt goes into the top-level
// system parameter; the Messages API rejects system roles in the messages
// array.
func (c *Client) Complete(ctx context.Context, system string, turns []llm.Turn) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, turn := range turns {
		role := anthropic.MessageParamRoleUser
		if turn.Role == llm.RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		messages = append(messages, anthropic.MessageParam{
			Role:    role,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(turn.Content)},
		})
	}

	params := anthropic.MessageNewParams{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system, Type: "text"}}
	}

	out, err := retry.Execute(ctx, c.retryCfg, func() (string, error) {
		resp, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return "", err
		}
		if resp == nil || len(resp.Content) == 0 {
			return "", fmt.Errorf("empty response")
		}
		var text string
		for i := range resp.Content {
			block := &resp.Content[i]
			if block.Type == "text" {
				text += block.AsText().Text
			}
		}
		return text, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: claude: %v", llm.ErrTransport, err)
	}
	return out, nil
}
