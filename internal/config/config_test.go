package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
[watch]
  dir = "/recordings"
  patterns = ["*.m4a"]
  stabilize_interval = "100ms"
  stabilize_checks = 2

[transcription]
  provider = "whisper-cpp"
  model_path = "/models/ggml-base.bin"
  retry_count = 2
  retry_backoff = "1s"

[formatter]
  provider = "ollama"
  api_url = "http://localhost:11434"
  model = "llama3.2"
  temperature = 0.3

[vault]
  path = "/vault"
  notes_folder = "voice_notes"
  tags_file = "allowed_tags.md"
  tag_namespace = "voicenote"
`

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	if cfg.Watch.Dir != "/recordings" {
		t.Errorf("watch dir = %q", cfg.Watch.Dir)
	}
	if cfg.Watch.StabilizeInterval != 100*time.Millisecond {
		t.Errorf("stabilize interval = %v", cfg.Watch.StabilizeInterval)
	}
	if cfg.Transcription.RetryBackoff != time.Second {
		t.Errorf("retry backoff = %v", cfg.Transcription.RetryBackoff)
	}
	if cfg.Formatter.Temperature != 0.3 {
		t.Errorf("temperature = %v", cfg.Formatter.Temperature)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUDIO_INPUT_FOLDER", "/env/recordings")
	t.Setenv("OBSIDIAN_VAULT_PATH", "/env/vault")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("OLLAMA_TEMPERATURE", "0.7")

	cfg, err := LoadFile(writeConfig(t, validConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Watch.Dir != "/env/recordings" {
		t.Errorf("env override missed for watch dir: %q", cfg.Watch.Dir)
	}
	if cfg.Vault.Path != "/env/vault" {
		t.Errorf("env override missed for vault path: %q", cfg.Vault.Path)
	}
	if cfg.Formatter.Model != "mistral" {
		t.Errorf("env override missed for model: %q", cfg.Formatter.Model)
	}
	if cfg.Formatter.Temperature != 0.7 {
		t.Errorf("env override missed for temperature: %v", cfg.Formatter.Temperature)
	}
}

func TestTagsFilePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vault.Path = "/vault"

	if got := cfg.TagsFilePath(); got != filepath.Join("/vault", "allowed_tags.md") {
		t.Errorf("relative tags file = %q", got)
	}

	cfg.Vault.TagsFile = "/elsewhere/tags.md"
	if got := cfg.TagsFilePath(); got != "/elsewhere/tags.md" {
		t.Errorf("absolute tags file = %q", got)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Watch.Dir = "/recordings"
		cfg.Vault.Path = "/vault"
		cfg.Transcription.ModelPath = "/models/ggml-base.bin"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing watch dir",
			mutate:  func(c *Config) { c.Watch.Dir = "" },
			wantErr: "watch",
		},
		{
			name:    "missing vault path",
			mutate:  func(c *Config) { c.Vault.Path = "" },
			wantErr: "vault",
		},
		{
			name:    "unknown transcription provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "siri" },
			wantErr: "transcription",
		},
		{
			name:    "whisper-cpp without model path",
			mutate:  func(c *Config) { c.Transcription.ModelPath = "" },
			wantErr: "model_path",
		},
		{
			name: "openai transcription without key or url",
			mutate: func(c *Config) {
				c.Transcription.Provider = "openai"
				c.Transcription.APIKey = ""
				c.Transcription.APIURL = ""
			},
			wantErr: "api_key",
		},
		{
			name:    "unknown language code",
			mutate:  func(c *Config) { c.Transcription.Language = "klingon" },
			wantErr: "language",
		},
		{
			name:    "formatter temperature out of range",
			mutate:  func(c *Config) { c.Formatter.Temperature = 3.5 },
			wantErr: "formatter",
		},
		{
			name:    "ollama without url",
			mutate:  func(c *Config) { c.Formatter.APIURL = "" },
			wantErr: "api_url",
		},
		{
			name:    "bad notification type",
			mutate:  func(c *Config) { c.Notifications.Type = "carrier-pigeon" },
			wantErr: "must be a valid value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultConfigContentParses(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, defaultConfigContent))
	if err != nil {
		t.Fatalf("shipped default config does not parse: %v", err)
	}
	if cfg.Formatter.Provider != "ollama" {
		t.Errorf("default formatter provider = %q", cfg.Formatter.Provider)
	}
	if len(cfg.Watch.Patterns) != 3 {
		t.Errorf("default patterns = %v", cfg.Watch.Patterns)
	}
}
