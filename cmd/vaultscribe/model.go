package main

import (
	"context"
	"fmt"

	"github.com/calebmatthews/vaultscribe/internal/models/whisper"
	"github.com/spf13/cobra"
)

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local whisper models",
	}

	cmd.AddCommand(modelListCmd())
	cmd.AddCommand(modelDownloadCmd())
	cmd.AddCommand(modelRemoveCmd())

	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available whisper models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range whisper.ListModels() {
				mark := "[ ]"
				if whisper.IsInstalled(m.ID) {
					mark = "[x]"
				}
				lang := "english-only"
				if m.Multilingual {
					lang = "multilingual"
				}
				fmt.Printf("%s %-10s %s [%s, %s]\n", mark, m.ID, m.Name, lang, m.Size)
			}
			return nil
		},
	}
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-id>",
		Short: "Download a whisper model (e.g. base.en)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelDownload(cmd.Context(), args[0])
		},
	}
}

func runModelDownload(ctx context.Context, modelID string) error {
	info := whisper.GetModel(modelID)
	if info == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}

	if whisper.IsInstalled(modelID) {
		fmt.Printf("model '%s' is already installed at %s\n", modelID, whisper.GetModelPath(modelID))
		return nil
	}

	fmt.Printf("downloading %s (%s)...\n", modelID, info.Size)

	var lastPercent int
	err := whisper.Download(ctx, modelID, func(downloaded, total int64) {
		if total > 0 {
			percent := int(downloaded * 100 / total)
			if percent >= lastPercent+10 {
				fmt.Printf("%d%% ", percent)
				lastPercent = percent
			}
		}
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("\ndownload complete: %s\n", whisper.GetModelPath(modelID))
	return nil
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-id>",
		Short: "Remove a downloaded whisper model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := whisper.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("model '%s' removed\n", args[0])
			return nil
		},
	}
}
