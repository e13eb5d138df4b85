package daemon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/note"
	"github.com/calebmatthews/vaultscribe/internal/notify"
	"github.com/calebmatthews/vaultscribe/internal/pipeline"
	"github.com/calebmatthews/vaultscribe/internal/tags"
	"github.com/calebmatthews/vaultscribe/internal/testutil"
	"github.com/calebmatthews/vaultscribe/internal/vault"
	"github.com/calebmatthews/vaultscribe/internal/watcher"
)

type fixedTranscriber struct {
	text string
}

func (f fixedTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, nil
}

type fixedFormatter struct {
	generated *note.Generated
}

func (f fixedFormatter) Format(ctx context.Context, transcript string, allowedTags []string) (*note.Generated, error) {
	return f.generated, nil
}

// A shutdown signal must not abort the recording being processed: the
// service context stops the watcher while the item context stays live
// until the loop drains.
func TestShutdownFinishesInFlightItem(t *testing.T) {
	d := newDaemon(nil, nil, nil)
	defer d.itemCancel()

	started := make(chan struct{})
	d.process = func(ctx context.Context, item watcher.Item) error {
		close(started)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return nil
		}
	}

	items := make(chan watcher.Item, 1)
	items <- watcher.Item{Path: "/recordings/in-flight.m4a"}

	d.wg.Add(1)
	go d.processLoop(items)

	<-started
	d.cancel() // shutdown begins while the item is still processing
	close(items)
	d.wg.Wait()

	if got := d.processed.Load(); got != 1 {
		t.Errorf("processed = %d, want 1, the in-flight item should finish", got)
	}
	if got := d.failed.Load(); got != 0 {
		t.Errorf("failed = %d, want 0", got)
	}
}

// Drops a recording into the watch folder and follows it through discovery,
// transcription, formatting, and filing into the vault.
func TestWatchToVaultFlow(t *testing.T) {
	cfg := testutil.TestConfig(t)

	w, err := watcher.New(cfg.ToWatcherConfig())
	if err != nil {
		t.Fatalf("watcher.New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	audioPath := testutil.WriteAudioFile(t, cfg.Watch.Dir, "standup.m4a")

	var item watcher.Item
	select {
	case item = <-items:
	case <-ctx.Done():
		t.Fatal("timed out waiting for watcher to emit the recording")
	}
	if item.Path != audioPath {
		t.Fatalf("item.Path = %s, want %s", item.Path, audioPath)
	}

	tagSet, err := tags.Load(cfg.TagsFilePath(), cfg.Vault.TagNamespace)
	if err != nil {
		t.Fatalf("tags.Load() error = %v", err)
	}

	p := pipeline.New(
		cfg.ToPipelineConfig(),
		fixedTranscriber{text: "we agreed to ship on friday"},
		fixedFormatter{generated: &note.Generated{
			Title: "Standup Agreement",
			Body:  "We agreed to ship on Friday.",
			Tags:  []string{"meeting", "gossip"},
			Todos: []string{"Ship on Friday"},
		}},
		tagSet,
		vault.NewWriter(cfg.Vault.Path, cfg.Vault.NotesFolder),
		notify.Nop{},
	)

	notePath, err := p.Process(ctx, item)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	content, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatalf("failed to read filed note: %v", err)
	}
	body := string(content)

	if !strings.Contains(body, "# Standup Agreement") {
		t.Error("note missing title heading")
	}
	if !strings.Contains(body, "#voicenote/meeting") {
		t.Error("note missing namespaced tag for allowed proposal")
	}
	if strings.Contains(body, "gossip") {
		t.Error("tag outside the allow-list leaked into the note")
	}
	if !strings.Contains(body, "- [ ] Ship on Friday") {
		t.Error("note missing task checkbox")
	}

	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Error("original recording should have been moved out of the watch folder")
	}
	archived := filepath.Join(cfg.Vault.Path, cfg.Vault.NotesFolder, vault.AudioFolder, "standup.m4a")
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived recording not found at %s: %v", archived, err)
	}
}
