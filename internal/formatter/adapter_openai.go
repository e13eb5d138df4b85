package formatter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/calebmatthews/vaultscribe/internal/note"
)

// OpenAIFormatter uses the chat completions API. With a custom base URL this
// also covers Ollama's OpenAI-compatible /v1 endpoint and similar local
// servers.
type OpenAIFormatter struct {
	client *openai.Client
	config Config
}

func NewOpenAIFormatter(cfg Config) *OpenAIFormatter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIURL != "" {
		clientConfig.BaseURL = cfg.APIURL
	}
	return &OpenAIFormatter{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (f *OpenAIFormatter) Format(ctx context.Context, transcript string, allowedTags []string) (*note.Generated, error) {
	if transcript == "" {
		return nil, NewFormatError(fmt.Errorf("empty transcript"))
	}

	req := openai.ChatCompletionRequest{
		Model: f.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(allowedTags)},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(transcript)},
		},
		Temperature: f.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	resp, err := f.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-formatter: API call failed after %v: %v", duration, err)
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: no response choices")
	}

	log.Printf("openai-formatter: model %s responded in %v", f.config.Model, duration)
	return ParseResponse(resp.Choices[0].Message.Content)
}
