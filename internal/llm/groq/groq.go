// Package groq provides a completion client for Groq's OpenAI-compatible API
// using the official openai-go SDK. Pointing BaseURL elsewhere makes the same
// client work against any OpenAI-compatible endpoint.
package groq

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/uilabs/architect/internal/llm"
	"github.com/uilabs/architect/internal/retry"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel balances quality and latency for component generation.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultTemperature = 0.3
	defaultMaxTokens   = 4096
)

func init() {
	llm.Register("groq", New)
}

// Client implements llm.Client against an OpenAI-compatible chat API.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	retryCfg    retry.Config
}

// New creates a Groq client from the given config.
func New(cfg llm.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required (set GROQ_API_KEY)")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
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

	return &Client{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey), option.WithBaseURL(baseURL)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		retryCfg: retry.Config{
			MaxRetries: cfg.TransportRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		},
	}, nil
}

// Name implements llm.Client.
func (c *Client) Name() string { return "groq" }

// Complete implements llm.Client.
func (c *Client) Complete(ctx context.Context, system string, turns []llm.Turn) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	msgs = append(msgs, openai.SystemMessage(system))
	for _, turn := range turns {
		switch turn.Role {
		case llm.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(turn.Content))
		default:
			msgs = append(msgs, openai.UserMessage(turn.Content))
		}
	}

	out, err := retry.Execute(ctx, c.retryCfg, func() (string, error) {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(c.model),
			Messages:    msgs,
			Temperature: openai.Float(c.temperature),
			MaxTokens:   openai.Int(int64(c.maxTokens)),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("empty choices in response")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: groq: %v", llm.ErrTransport, err)
	}
	return out, nil
}
