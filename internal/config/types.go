package config

import "time"

type Config struct {
	Watch         WatchConfig         `toml:"watch"`
	Transcription TranscriptionConfig `toml:"transcription"`
	Formatter     FormatterConfig     `toml:"formatter"`
	Vault         VaultConfig         `toml:"vault"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type WatchConfig struct {
	Dir               string        `toml:"dir"`
	Patterns          []string      `toml:"patterns"`
	StabilizeInterval time.Duration `toml:"stabilize_interval"`
	StabilizeChecks   int           `toml:"stabilize_checks"`
}

type TranscriptionConfig struct {
	Provider     string        `toml:"provider"` // "whisper-cpp" or "openai"
	APIURL       string        `toml:"api_url"`  // OpenAI-compatible base URL (local servers)
	APIKey       string        `toml:"api_key"`
	Model        string        `toml:"model"`
	ModelPath    string        `toml:"model_path"` // ggml model for whisper-cpp
	Language     string        `toml:"language"`
	Threads      int           `toml:"threads"` // whisper-cpp CPU threads (0 = auto)
	RetryCount   int           `toml:"retry_count"`
	RetryBackoff time.Duration `toml:"retry_backoff"`
}

type FormatterConfig struct {
	Provider    string  `toml:"provider"` // "ollama" or "openai"
	APIURL      string  `toml:"api_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

type VaultConfig struct {
	Path         string `toml:"path"`
	NotesFolder  string `toml:"notes_folder"`
	TagsFile     string `toml:"tags_file"` // relative paths resolve against the vault
	TagNamespace string `toml:"tag_namespace"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}
