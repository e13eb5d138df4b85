package config

import "time"

// DefaultConfig returns the initial configuration used for onboarding.
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			Patterns:          []string{"*.m4a", "*.mp3", "*.wav"},
			StabilizeInterval: 2 * time.Second,
			StabilizeChecks:   3,
		},
		Transcription: TranscriptionConfig{
			Provider:     "whisper-cpp",
			Model:        "whisper-1",
			Language:     "",
			Threads:      0,
			RetryCount:   3,
			RetryBackoff: time.Second,
		},
		Formatter: FormatterConfig{
			Provider:    "ollama",
			APIURL:      "http://localhost:11434",
			Model:       "llama3.2",
			Temperature: 0.3,
		},
		Vault: VaultConfig{
			NotesFolder:  "voice_notes",
			TagsFile:     "allowed_tags.md",
			TagNamespace: "voicenote",
		},
		Notifications: NotificationsConfig{
			Enabled: false,
			Type:    "log",
		},
	}
}
