// Package pipeline runs one discovered recording through
// transcribe -> format -> constrain -> file.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/formatter"
	"github.com/calebmatthews/vaultscribe/internal/notify"
	"github.com/calebmatthews/vaultscribe/internal/tags"
	"github.com/calebmatthews/vaultscribe/internal/transcriber"
	"github.com/calebmatthews/vaultscribe/internal/vault"
	"github.com/calebmatthews/vaultscribe/internal/watcher"
)

// Config for per-item processing.
type Config struct {
	RetryCount   int           // transcription attempts per item
	RetryBackoff time.Duration // base delay between attempts, grows linearly
}

// Pipeline processes items sequentially. Each item passes through exactly
// once; a stage failure abandons the item and never affects the next one.
type Pipeline struct {
	config      Config
	transcriber transcriber.Transcriber
	formatter   formatter.Formatter
	tagSet      *tags.Set
	writer      *vault.Writer
	notifier    notify.Notifier
}

func New(cfg Config, t transcriber.Transcriber, f formatter.Formatter, set *tags.Set, w *vault.Writer, n notify.Notifier) *Pipeline {
	if cfg.RetryCount < 1 {
		cfg.RetryCount = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if n == nil {
		n = notify.Nop{}
	}
	return &Pipeline{
		config:      cfg,
		transcriber: t,
		formatter:   f,
		tagSet:      set,
		writer:      w,
		notifier:    n,
	}
}

// Process runs the full pipeline for one item and returns the filed note
// path. Errors are returned for logging; the caller moves on to the next
// item regardless.
func (p *Pipeline) Process(ctx context.Context, item watcher.Item) (string, error) {
	start := time.Now()
	log.Printf("Pipeline: processing %s (%d bytes)", item.Path, item.Size)

	notePath, err := p.process(ctx, item)
	if err != nil {
		p.notifier.ItemFailed(filepath.Base(item.Path), err)
		return "", err
	}

	p.notifier.NoteFiled(filepath.Base(notePath))
	log.Printf("Pipeline: filed %s in %v", notePath, time.Since(start))
	return notePath, nil
}

func (p *Pipeline) process(ctx context.Context, item watcher.Item) (string, error) {
	transcript, err := p.transcribe(ctx, item.Path)
	if err != nil {
		return "", err
	}
	log.Printf("Pipeline: transcribed %s (%d chars)", item.Path, len(transcript))

	generated, err := p.formatter.Format(ctx, transcript, p.tagSet.All())
	if err != nil {
		return "", fmt.Errorf("format %s: %w", item.Path, err)
	}

	finalTags := p.tagSet.Constrain(generated.Tags)
	if dropped := len(generated.Tags) - len(finalTags); dropped > 0 {
		log.Printf("Pipeline: dropped %d disallowed tags for %s", dropped, item.Path)
	}

	return p.writer.File(generated, finalTags, item.Path, time.Now())
}

// transcribe retries the model call with linear backoff. Retrying here is
// cheap; everything downstream runs once.
func (p *Pipeline) transcribe(ctx context.Context, audioPath string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.config.RetryCount; attempt++ {
		text, err := p.transcriber.Transcribe(ctx, audioPath)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < p.config.RetryCount {
			log.Printf("Pipeline: transcription attempt %d/%d failed: %v", attempt, p.config.RetryCount, err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * p.config.RetryBackoff):
			}
		}
	}
	return "", lastErr
}
