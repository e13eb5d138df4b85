package transcriber

import (
	"context"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranscriber talks to the OpenAI audio transcription API or any
// OpenAI-compatible local server (whisper.cpp server, faster-whisper) via a
// custom base URL.
type OpenAITranscriber struct {
	client *openai.Client
	config Config
}

func NewOpenAITranscriber(config Config) *OpenAITranscriber {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.APIURL != "" {
		clientConfig.BaseURL = config.APIURL
	}
	return &OpenAITranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	req := openai.AudioRequest{
		Model:    t.config.Model,
		FilePath: audioPath,
		Language: t.config.Language,
	}

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-transcriber: API call failed after %v: %v", duration, err)
		return "", NewTranscriptionError(audioPath, err)
	}

	log.Printf("openai-transcriber: transcribed %s in %v (%d chars)", audioPath, duration, len(resp.Text))
	return resp.Text, nil
}
