package config

import (
	"github.com/calebmatthews/vaultscribe/internal/formatter"
	"github.com/calebmatthews/vaultscribe/internal/notify"
	"github.com/calebmatthews/vaultscribe/internal/pipeline"
	"github.com/calebmatthews/vaultscribe/internal/transcriber"
	"github.com/calebmatthews/vaultscribe/internal/watcher"
)

func (c *Config) ToWatcherConfig() watcher.Config {
	return watcher.Config{
		Dir:               c.Watch.Dir,
		Patterns:          c.Watch.Patterns,
		StabilizeInterval: c.Watch.StabilizeInterval,
		StabilizeChecks:   c.Watch.StabilizeChecks,
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	return transcriber.Config{
		Provider:  c.Transcription.Provider,
		APIURL:    c.Transcription.APIURL,
		APIKey:    c.Transcription.APIKey,
		Model:     c.Transcription.Model,
		ModelPath: c.Transcription.ModelPath,
		Language:  c.Transcription.Language,
		Threads:   c.Transcription.Threads,
	}
}

func (c *Config) ToFormatterConfig() formatter.Config {
	return formatter.Config{
		Provider:    c.Formatter.Provider,
		APIURL:      c.Formatter.APIURL,
		APIKey:      c.Formatter.APIKey,
		Model:       c.Formatter.Model,
		Temperature: float32(c.Formatter.Temperature),
	}
}

func (c *Config) ToPipelineConfig() pipeline.Config {
	return pipeline.Config{
		RetryCount:   c.Transcription.RetryCount,
		RetryBackoff: c.Transcription.RetryBackoff,
	}
}

// Notifier builds the notifier matching the notifications section.
func (c *Config) Notifier() notify.Notifier {
	if !c.Notifications.Enabled {
		return notify.Nop{}
	}
	switch c.Notifications.Type {
	case "desktop":
		return notify.Desktop{}
	case "log":
		return notify.Log{}
	default:
		return notify.Nop{}
	}
}
