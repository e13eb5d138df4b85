package main

import (
	"context"
	"fmt"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/config"
	"github.com/calebmatthews/vaultscribe/internal/deps"
	"github.com/calebmatthews/vaultscribe/internal/formatter"
	"github.com/calebmatthews/vaultscribe/internal/models/whisper"
	"github.com/calebmatthews/vaultscribe/internal/tags"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and services the current config needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

func runDoctor(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ok := true

	if cfg.Transcription.Provider == "whisper-cpp" {
		status := deps.CheckWhisperCli()
		if status.Installed {
			printCheck(true, fmt.Sprintf("whisper-cli: %s", status.Path))
		} else {
			printCheck(false, "whisper-cli not found in PATH (install whisper.cpp)")
			ok = false
		}

		if _, err := whisper.Resolve(cfg.Transcription.ModelPath); err != nil {
			printCheck(false, fmt.Sprintf("whisper model: %v", err))
			ok = false
		} else {
			printCheck(true, fmt.Sprintf("whisper model: %s", cfg.Transcription.ModelPath))
		}
	}

	if cfg.Formatter.Provider == "ollama" {
		f := formatter.NewOllamaFormatter(cfg.ToFormatterConfig())
		healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		healthy := f.IsHealthy(healthCtx)
		cancel()
		if healthy {
			printCheck(true, fmt.Sprintf("ollama reachable at %s", cfg.Formatter.APIURL))
		} else {
			printCheck(false, fmt.Sprintf("ollama not reachable at %s", cfg.Formatter.APIURL))
			ok = false
		}
	}

	if cfg.Notifications.Enabled && cfg.Notifications.Type == "desktop" {
		status := deps.CheckNotifySend()
		if status.Installed {
			printCheck(true, fmt.Sprintf("notify-send: %s", status.Path))
		} else {
			printCheck(false, "notify-send not found in PATH (libnotify)")
			ok = false
		}
	}

	tagSet, err := tags.Load(cfg.TagsFilePath(), cfg.Vault.TagNamespace)
	if err != nil {
		printCheck(false, fmt.Sprintf("allowed tags: %v", err))
		ok = false
	} else if tagSet.Len() == 0 {
		printCheck(true, fmt.Sprintf("allowed tags: none found in %s (all proposed tags will be dropped)", cfg.TagsFilePath()))
	} else {
		printCheck(true, fmt.Sprintf("allowed tags: %d loaded from %s", tagSet.Len(), cfg.TagsFilePath()))
	}

	if !ok {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("\nall checks passed")
	return nil
}

func printCheck(ok bool, msg string) {
	mark := "[x]"
	if !ok {
		mark = "[ ]"
	}
	fmt.Printf("%s %s\n", mark, msg)
}
