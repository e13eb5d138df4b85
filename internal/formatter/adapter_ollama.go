package formatter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/note"
)

// OllamaFormatter talks to Ollama's native /api/generate endpoint with JSON
// output mode enabled.
type OllamaFormatter struct {
	config     Config
	httpClient *http.Client
}

func NewOllamaFormatter(cfg Config) *OllamaFormatter {
	return &OllamaFormatter{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system"`
	Format  string         `json:"format"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (f *OllamaFormatter) Format(ctx context.Context, transcript string, allowedTags []string) (*note.Generated, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, NewFormatError(fmt.Errorf("empty transcript"))
	}

	reqBody := ollamaGenerateRequest{
		Model:  f.config.Model,
		Prompt: BuildUserPrompt(transcript),
		System: BuildSystemPrompt(allowedTags),
		Format: "json",
		Stream: false,
		Options: map[string]any{
			"temperature": f.config.Temperature,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	url := strings.TrimRight(f.config.APIURL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("ollama-formatter: request failed after %v: %v", duration, err)
		return nil, fmt.Errorf("ollama generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ollama generate: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}

	log.Printf("ollama-formatter: model %s responded in %v", f.config.Model, duration)
	return ParseResponse(result.Response)
}

// IsHealthy reports whether the Ollama server is reachable.
func (f *OllamaFormatter) IsHealthy(ctx context.Context) bool {
	url := strings.TrimRight(f.config.APIURL, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
