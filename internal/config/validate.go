package config

import (
	"fmt"

	"github.com/calebmatthews/vaultscribe/internal/language"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the whole configuration before the daemon starts.
func (c *Config) Validate() error {
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := c.Transcription.Validate(); err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	if err := c.Formatter.Validate(); err != nil {
		return fmt.Errorf("formatter: %w", err)
	}
	if err := c.Vault.Validate(); err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	return c.Notifications.Validate()
}

func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.StabilizeChecks, validation.Min(1)),
	)
}

func (c *TranscriptionConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In("whisper-cpp", "openai")),
		validation.Field(&c.RetryCount, validation.Min(1)),
	); err != nil {
		return err
	}
	if !language.IsValidCode(c.Language) {
		return fmt.Errorf("unknown language code: %s", c.Language)
	}
	switch c.Provider {
	case "whisper-cpp":
		if c.ModelPath == "" {
			return fmt.Errorf("model_path required for whisper-cpp")
		}
	case "openai":
		if c.APIKey == "" && c.APIURL == "" {
			return fmt.Errorf("api_key required (or api_url for a local server)")
		}
		if c.Model == "" {
			return fmt.Errorf("model required for openai provider")
		}
	}
	return nil
}

func (c *FormatterConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In("ollama", "openai")),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	); err != nil {
		return err
	}
	if c.Provider == "ollama" && c.APIURL == "" {
		return fmt.Errorf("api_url required for ollama provider")
	}
	if c.Provider == "openai" && c.APIKey == "" && c.APIURL == "" {
		return fmt.Errorf("api_key required (or api_url for a local server)")
	}
	return nil
}

func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.NotesFolder, validation.Required),
		validation.Field(&c.TagsFile, validation.Required),
		validation.Field(&c.TagNamespace, validation.Required),
	)
}

func (c *NotificationsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Type, validation.In("desktop", "log", "none")),
	)
}
