package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/bus"
	"github.com/calebmatthews/vaultscribe/internal/config"
	"github.com/calebmatthews/vaultscribe/internal/daemon"
	"github.com/calebmatthews/vaultscribe/internal/formatter"
	"github.com/calebmatthews/vaultscribe/internal/pipeline"
	"github.com/calebmatthews/vaultscribe/internal/tags"
	"github.com/calebmatthews/vaultscribe/internal/transcriber"
	"github.com/calebmatthews/vaultscribe/internal/tui"
	"github.com/calebmatthews/vaultscribe/internal/vault"
	"github.com/calebmatthews/vaultscribe/internal/watcher"
	"github.com/spf13/cobra"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "vaultscribe",
	Short: "File voice recordings into your vault as formatted notes",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		processCmd(),
		statusCmd(),
		stopCmd(),
		versionCmd(),
		configureCmd(),
		configCmd(),
		modelCmd(),
		doctorCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daemon.New()
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}
}

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe and file a single recording, then exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), args[0])
		},
	}
}

func runProcess(ctx context.Context, audioPath string) error {
	info, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Errorf("cannot read audio file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	t, err := transcriber.New(cfg.ToTranscriberConfig())
	if err != nil {
		return err
	}
	f, err := formatter.New(cfg.ToFormatterConfig())
	if err != nil {
		return err
	}
	tagSet, err := tags.Load(cfg.TagsFilePath(), cfg.Vault.TagNamespace)
	if err != nil {
		return fmt.Errorf("failed to load allowed tags: %w", err)
	}
	writer := vault.NewWriter(cfg.Vault.Path, cfg.Vault.NotesFolder)

	p := pipeline.New(cfg.ToPipelineConfig(), t, f, tagSet, writer, cfg.Notifier())
	notePath, err := p.Process(ctx, watcher.Item{
		Path:         audioPath,
		Size:         info.Size(),
		DiscoveredAt: time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Filed %s\n", notePath)
	return nil
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for vaultscribe.
This will guide you through setting up:
- The watch folder for incoming recordings
- Vault location and allowed tags
- Transcription engine (whisper.cpp or an OpenAI-compatible API)
- Note formatting LLM (Ollama or an OpenAI-compatible API)
- Notification preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()
	fmt.Println("Next Steps:")
	fmt.Println("1. Restart the daemon to apply changes: vaultscribe stop && vaultscribe serve")
	fmt.Printf("2. Drop a recording into %s\n", result.Config.Watch.Dir)
	fmt.Println()

	return nil
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
