package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/danielsohn/chronica/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// openAICompatible serves both OpenAI and Ollama, which exposes the same
// chat-completions API behind a custom base URL.
type openAICompatible struct {
	client  *openai.Client
	name    string
	model   string
	timeout time.Duration
}

func newOpenAICompatible(cfg model.LLMConfig) (*openAICompatible, error) {
	apiKey := cfg.APIKey
	baseURL := cfg.BaseURL

	switch cfg.Provider {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		if apiKey == "" {
			apiKey = "ollama" // the server ignores it, the client requires it
		}
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &openAICompatible{
		client:  openai.NewClientWithConfig(clientCfg),
		name:    cfg.Provider,
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

func (p *openAICompatible) Name() string { return p.name }

func (p *openAICompatible) Overview(ctx context.Context, req OverviewRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 600
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write concise Korean summaries of dataset statistics. Never invent figures.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}
