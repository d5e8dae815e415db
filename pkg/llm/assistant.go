// Package llm backs the GuardianAI assistant with any OpenAI-compatible API.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"guardian/pkg/errors"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Assistant struct {
	cli   *openai.Client
	model string
}

const systemPrompt = "You are GuardianAI, the in-app safety assistant of a " +
	"community safety-reporting app. Give short, practical personal-safety " +
	"guidance. For emergencies, always tell the user to use the SOS button " +
	"or call the local emergency number."

// NewAssistant builds the assistant, or returns nil when no API key is
// configured (the endpoint then reports the feature as unavailable).
func NewAssistant(cfg Config) *Assistant {
	if cfg.APIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Assistant{cli: openai.NewClientWithConfig(clientCfg), model: model}
}

// Ask sends one question and returns the assistant's reply.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
