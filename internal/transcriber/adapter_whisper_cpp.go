package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/models/whisper"
)

// WhisperCppTranscriber runs local whisper.cpp via the whisper-cli binary.
type WhisperCppTranscriber struct {
	modelPath string
	language  string
	threads   int
}

// NewWhisperCppTranscriber creates a whisper-cpp backed transcriber.
// modelPath is either a full path to a ggml model file or a model ID
// known to the model registry (e.g. "base.en"). Threads 0 means auto.
func NewWhisperCppTranscriber(modelPath, lang string, threads int) *WhisperCppTranscriber {
	return &WhisperCppTranscriber{
		modelPath: modelPath,
		language:  lang,
		threads:   threads,
	}
}

func (t *WhisperCppTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", NewTranscriptionError(audioPath, fmt.Errorf("audio file unreadable: %w", err))
	}
	modelPath, err := whisper.Resolve(t.modelPath)
	if err != nil {
		return "", NewTranscriptionError(audioPath, err)
	}
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return "", NewTranscriptionError(audioPath, fmt.Errorf("model file not found: %s", modelPath))
	}

	whisperPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return "", NewTranscriptionError(audioPath, fmt.Errorf("whisper-cli not found: install whisper.cpp first"))
	}

	lang := t.language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", modelPath,
		"-l", lang,
		"-nt", // no timestamps
		"-np", // no progress
		"-f", audioPath,
	}
	if t.threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", t.threads))
	}

	cmd := exec.CommandContext(ctx, whisperPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("whisper-cpp: command failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return "", NewTranscriptionError(audioPath, fmt.Errorf("whisper-cli failed: %w", err))
	}

	text := strings.TrimSpace(stdout.String())
	log.Printf("whisper-cpp: transcribed %s in %v (%d chars)", audioPath, duration, len(text))
	return text, nil
}
