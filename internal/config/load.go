package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appDir := filepath.Join(configDir, "vaultscribe")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appDir, "config.toml"), nil
}

// Load reads the TOML config, creating it with defaults on first run, then
// applies .env / environment overrides and expands ~ in paths.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config: no config file found at %s, creating with defaults", configPath)
		if err := SaveDefaultConfig(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return LoadFile(configPath)
}

// LoadFile reads one specific config file. Split out so tests can point at a
// temp file.
func LoadFile(configPath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	// .env next to the working directory, ignored when absent
	_ = godotenv.Load()
	config.applyEnvOverrides()
	config.expandPaths()

	return &config, nil
}

// applyEnvOverrides lets the original env-style settings win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AUDIO_INPUT_FOLDER"); v != "" {
		c.Watch.Dir = v
	}
	if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
		c.Vault.Path = v
	}
	if v := os.Getenv("NOTES_FOLDER"); v != "" {
		c.Vault.NotesFolder = v
	}
	if v := os.Getenv("ALLOWED_TAGS_FILE"); v != "" {
		c.Vault.TagsFile = v
	}
	if v := os.Getenv("OLLAMA_API_URL"); v != "" {
		c.Formatter.APIURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Formatter.Model = v
	}
	if v := os.Getenv("OLLAMA_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Formatter.Temperature = f
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if c.Transcription.APIKey == "" {
			c.Transcription.APIKey = v
		}
		if c.Formatter.APIKey == "" {
			c.Formatter.APIKey = v
		}
	}
}

func (c *Config) expandPaths() {
	c.Watch.Dir = expandTilde(c.Watch.Dir)
	c.Vault.Path = expandTilde(c.Vault.Path)
	c.Transcription.ModelPath = expandTilde(c.Transcription.ModelPath)
	c.Vault.TagsFile = expandTilde(c.Vault.TagsFile)
}

// TagsFilePath resolves the allowed-tags file; relative paths live inside
// the vault.
func (c *Config) TagsFilePath() string {
	if filepath.IsAbs(c.Vault.TagsFile) {
		return c.Vault.TagsFile
	}
	return filepath.Join(c.Vault.Path, c.Vault.TagsFile)
}

func expandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, []byte(defaultConfigContent), 0644)
}

const defaultConfigContent = `# Vaultscribe Configuration
# This file is automatically generated with defaults.
# Environment variables (AUDIO_INPUT_FOLDER, OBSIDIAN_VAULT_PATH, NOTES_FOLDER,
# ALLOWED_TAGS_FILE, OLLAMA_API_URL, OLLAMA_MODEL) override the values below.

# Recording folder watch
[watch]
  dir = ""                         # folder your recorder drops audio files into
  patterns = ["*.m4a", "*.mp3", "*.wav"]
  stabilize_interval = "2s"        # poll interval while a file is still being copied
  stabilize_checks = 3             # consecutive unchanged-size polls before processing

# Speech-to-text backend
[transcription]
  provider = "whisper-cpp"         # "whisper-cpp" (local binary) or "openai" (API/local server)
  model_path = ""                  # ggml model file for whisper-cpp
  api_url = ""                     # OpenAI-compatible base URL for local whisper servers
  api_key = ""                     # or set OPENAI_API_KEY
  model = "whisper-1"              # model name for API providers
  language = ""                    # ISO-639-1 code, empty for auto-detect
  threads = 0                      # whisper-cpp CPU threads (0 = auto)
  retry_count = 3                  # transcription attempts per recording
  retry_backoff = "1s"

# Note formatting model
[formatter]
  provider = "ollama"              # "ollama" (native API) or "openai" (chat completions)
  api_url = "http://localhost:11434"
  model = "llama3.2"
  temperature = 0.3

# Obsidian-style vault filing
[vault]
  path = ""                        # vault root
  notes_folder = "voice_notes"     # notes land here, audio in its "audio" subfolder
  tags_file = "allowed_tags.md"    # Markdown list of #tags; relative to the vault
  tag_namespace = "voicenote"      # prefix applied to every accepted tag

# Desktop notifications
[notifications]
  enabled = false
  type = "log"                     # "desktop", "log", "none"
`
