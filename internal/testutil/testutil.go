package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/config"
)

// TestConfig returns a valid configuration rooted in a temp directory.
// The watch folder, vault, and allowed-tags file all exist on disk.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	watchDir := filepath.Join(root, "recordings")
	vaultDir := filepath.Join(root, "vault")
	for _, dir := range []string{watchDir, vaultDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Watch.Dir = watchDir
	cfg.Watch.StabilizeInterval = 10 * time.Millisecond
	cfg.Watch.StabilizeChecks = 2
	cfg.Vault.Path = vaultDir
	cfg.Transcription.ModelPath = filepath.Join(root, "ggml-test.bin")
	cfg.Notifications.Enabled = false

	WriteTagsFile(t, cfg.TagsFilePath(), "meeting", "journal", "idea")

	return cfg
}

// WriteTagsFile writes an allowed-tags markdown file with one #tag per line.
func WriteTagsFile(t *testing.T, path string, tagNames ...string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("# Allowed Tags\n\n")
	for _, name := range tagNames {
		b.WriteString("#" + name + "\n")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create tags dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write tags file: %v", err)
	}
}

// WriteAudioFile drops a fake recording into dir and returns its path.
func WriteAudioFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatalf("failed to write audio file: %v", err)
	}
	return path
}
