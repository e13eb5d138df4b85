package transcriber

import (
	"context"
	"fmt"
)

// Transcriber converts an audio file into raw text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Config for the transcription backend.
type Config struct {
	Provider  string // "whisper-cpp" or "openai"
	APIURL    string // base URL for OpenAI-compatible servers (empty = api.openai.com)
	APIKey    string
	Model     string // model name for API providers
	ModelPath string // ggml model file for whisper-cpp
	Language  string // ISO-639-1 code, empty for auto-detect
	Threads   int    // whisper-cpp CPU threads, 0 for auto
}

func DefaultConfig() Config {
	return Config{
		Provider: "whisper-cpp",
		Language: "",
		Model:    "whisper-1",
	}
}

// New creates a transcriber for the configured provider.
func New(config Config) (Transcriber, error) {
	switch config.Provider {
	case "whisper-cpp":
		if config.ModelPath == "" {
			return nil, fmt.Errorf("whisper-cpp model path required")
		}
		return NewWhisperCppTranscriber(config.ModelPath, config.Language, config.Threads), nil

	case "openai":
		if config.APIKey == "" && config.APIURL == "" {
			return nil, fmt.Errorf("OpenAI API key required (or api_url for a local server)")
		}
		return NewOpenAITranscriber(config), nil

	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", config.Provider)
	}
}
