package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calebmatthews/vaultscribe/internal/config"
	"github.com/charmbracelet/huh"
)

// ConfigureResult holds the configuration result from the wizard
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// Run starts the interactive configuration wizard. It walks through the
// watch folder, vault, transcription, formatter, and notification sections
// and returns the edited config for the caller to validate and save.
func Run(existing *config.Config) (*ConfigureResult, error) {
	cfg := existing
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	fmt.Println(Logo())
	fmt.Println()

	steps := []func(*config.Config) error{
		editWatch,
		editVault,
		editTranscription,
		editFormatter,
		editNotifications,
	}
	for _, step := range steps {
		if err := step(cfg); err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}
	}

	confirmed, err := showSummary(cfg)
	if err != nil || !confirmed {
		return &ConfigureResult{Cancelled: true}, nil
	}
	return &ConfigureResult{Config: cfg, Cancelled: false}, nil
}

func editWatch(cfg *config.Config) error {
	patterns := strings.Join(cfg.Watch.Patterns, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Watch Folder").
				Description("Directory where new voice recordings appear").
				Value(&cfg.Watch.Dir).
				Validate(required("watch folder")),
			huh.NewInput().
				Title("Audio Patterns").
				Description("Comma-separated glob patterns, e.g. *.m4a, *.mp3, *.wav").
				Value(&patterns),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}
	cfg.Watch.Patterns = splitList(patterns)
	return nil
}

func editVault(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Vault Path").
				Description("Root of your Obsidian vault").
				Value(&cfg.Vault.Path).
				Validate(required("vault path")),
			huh.NewInput().
				Title("Notes Folder").
				Description("Folder inside the vault where notes are filed").
				Value(&cfg.Vault.NotesFolder),
			huh.NewInput().
				Title("Allowed Tags File").
				Description("Markdown file listing allowed #tags (relative paths resolve against the vault)").
				Value(&cfg.Vault.TagsFile),
			huh.NewInput().
				Title("Tag Namespace").
				Description("Prefix applied to every tag, e.g. voicenote").
				Value(&cfg.Vault.TagNamespace),
		),
	).WithTheme(getTheme())

	return form.Run()
}

func editTranscription(cfg *config.Config) error {
	providerDesc := "Choose which engine to use for speech-to-text"
	if cfg.Transcription.Provider != "" {
		providerDesc = fmt.Sprintf("Currently: %s", cfg.Transcription.Provider)
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Provider").
				Description(providerDesc).
				Options(
					huh.NewOption("whisper.cpp (local CLI)", "whisper-cpp"),
					huh.NewOption("OpenAI-compatible API", "openai"),
				).
				Value(&cfg.Transcription.Provider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}

	var fields []huh.Field
	switch cfg.Transcription.Provider {
	case "whisper-cpp":
		fields = append(fields,
			huh.NewInput().
				Title("Model Path").
				Description("Path to the ggml Whisper model file").
				Value(&cfg.Transcription.ModelPath).
				Validate(required("model path")),
		)
	case "openai":
		fields = append(fields,
			huh.NewInput().
				Title("API URL").
				Description("Base URL of the OpenAI-compatible server (empty for api.openai.com)").
				Value(&cfg.Transcription.APIURL),
			huh.NewInput().
				Title("API Key").
				Description("Leave empty for local servers that do not check keys").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Transcription.APIKey),
			huh.NewInput().
				Title("Model").
				Description("e.g. whisper-1").
				Value(&cfg.Transcription.Model),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Language").
			Description("ISO-639-1 code (e.g. 'en', 'es') or empty for auto-detect").
			Value(&cfg.Transcription.Language),
	)

	detailForm := huh.NewForm(huh.NewGroup(fields...)).WithTheme(getTheme())
	return detailForm.Run()
}

func editFormatter(cfg *config.Config) error {
	providerDesc := "Choose which LLM turns transcripts into notes"
	if cfg.Formatter.Provider != "" {
		providerDesc = fmt.Sprintf("Currently: %s/%s", cfg.Formatter.Provider, cfg.Formatter.Model)
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Formatter Provider").
				Description(providerDesc).
				Options(
					huh.NewOption("Ollama (local)", "ollama"),
					huh.NewOption("OpenAI-compatible API", "openai"),
				).
				Value(&cfg.Formatter.Provider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}

	temperature := strconv.FormatFloat(cfg.Formatter.Temperature, 'g', -1, 64)

	fields := []huh.Field{
		huh.NewInput().
			Title("API URL").
			Description("Base URL of the model server, e.g. http://localhost:11434").
			Value(&cfg.Formatter.APIURL),
	}
	if cfg.Formatter.Provider == "openai" {
		fields = append(fields,
			huh.NewInput().
				Title("API Key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Formatter.APIKey),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title("Model").
			Description("e.g. llama3.1 or gpt-4o-mini").
			Value(&cfg.Formatter.Model).
			Validate(required("model")),
		huh.NewInput().
			Title("Temperature").
			Description("Sampling temperature between 0 and 2").
			Value(&temperature).
			Validate(func(s string) error {
				v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err != nil {
					return fmt.Errorf("must be a number")
				}
				if v < 0 || v > 2 {
					return fmt.Errorf("must be between 0 and 2")
				}
				return nil
			}),
	)

	detailForm := huh.NewForm(huh.NewGroup(fields...)).WithTheme(getTheme())
	if err := detailForm.Run(); err != nil {
		return err
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(temperature), 64); err == nil {
		cfg.Formatter.Temperature = v
	}
	return nil
}

func editNotifications(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Notifications").
				Description("Notify when a note is filed or an item fails").
				Value(&cfg.Notifications.Enabled),
			huh.NewSelect[string]().
				Title("Notification Type").
				Options(
					huh.NewOption("Desktop (notify-send)", "desktop"),
					huh.NewOption("Log only", "log"),
					huh.NewOption("None", "none"),
				).
				Value(&cfg.Notifications.Type),
		),
	).WithTheme(getTheme())

	return form.Run()
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Printf("  Watch folder:   %s\n", cfg.Watch.Dir)
	fmt.Printf("  Vault:          %s\n", cfg.Vault.Path)
	fmt.Printf("  Notes folder:   %s\n", cfg.Vault.NotesFolder)
	fmt.Printf("  Transcription:  %s\n", cfg.Transcription.Provider)
	fmt.Printf("  Formatter:      %s (%s)\n", cfg.Formatter.Provider, cfg.Formatter.Model)
	fmt.Printf("  Notifications:  %s\n", notificationSummary(cfg))
	fmt.Println()

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func notificationSummary(cfg *config.Config) string {
	if !cfg.Notifications.Enabled {
		return "disabled"
	}
	return cfg.Notifications.Type
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
