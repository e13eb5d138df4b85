// Package formatter turns a raw transcript into a structured note using a
// local text-generation model.
package formatter

import (
	"context"
	"errors"
	"fmt"

	"github.com/calebmatthews/vaultscribe/internal/note"
)

// Formatter produces a structured note from a transcript, choosing tags only
// from the allowed vocabulary.
type Formatter interface {
	Format(ctx context.Context, transcript string, allowedTags []string) (*note.Generated, error)
}

// Config holds formatter configuration.
type Config struct {
	Provider    string // "ollama" or "openai"
	APIURL      string // e.g. http://localhost:11434 for ollama
	APIKey      string
	Model       string
	Temperature float32
}

func DefaultConfig() Config {
	return Config{
		Provider:    "ollama",
		APIURL:      "http://localhost:11434",
		Model:       "llama3.2",
		Temperature: 0.3,
	}
}

// New creates a formatter for the configured provider.
func New(cfg Config) (Formatter, error) {
	switch cfg.Provider {
	case "ollama":
		if cfg.APIURL == "" {
			return nil, fmt.Errorf("ollama API URL required")
		}
		if cfg.Model == "" {
			return nil, fmt.Errorf("ollama model name required")
		}
		return NewOllamaFormatter(cfg), nil

	case "openai":
		if cfg.APIKey == "" && cfg.APIURL == "" {
			return nil, fmt.Errorf("OpenAI API key required (or api_url for a local server)")
		}
		return NewOpenAIFormatter(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported formatter provider: %s", cfg.Provider)
	}
}

// FormatError marks model output that could not be turned into a note. The
// item is abandoned; the watch loop is unaffected.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	if e == nil || e.Err == nil {
		return "format error"
	}
	return e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewFormatError(err error) error {
	if err == nil {
		return nil
	}
	return &FormatError{Err: err}
}

func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
