package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "whisper-cpp requires model path",
			config:  Config{Provider: "whisper-cpp"},
			wantErr: true,
		},
		{
			name:    "whisper-cpp with model path",
			config:  Config{Provider: "whisper-cpp", ModelPath: "/models/ggml-base.bin"},
			wantErr: false,
		},
		{
			name:    "openai requires key or local url",
			config:  Config{Provider: "openai", Model: "whisper-1"},
			wantErr: true,
		},
		{
			name:    "openai with local server url",
			config:  Config{Provider: "openai", APIURL: "http://localhost:8080/v1", Model: "whisper-1"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "parakeet"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.config)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWhisperCppMissingAudio(t *testing.T) {
	tr := NewWhisperCppTranscriber("/nonexistent/model.bin", "en", 0)
	_, err := tr.Transcribe(context.Background(), "/nonexistent/audio.wav")
	if err == nil {
		t.Fatal("expected error for missing audio file")
	}
	if !IsTranscriptionError(err) {
		t.Errorf("expected TranscriptionError, got %T", err)
	}
}

func TestWhisperCppMissingModel(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "rec.wav")
	if err := os.WriteFile(audio, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}

	tr := NewWhisperCppTranscriber(filepath.Join(dir, "missing-model.bin"), "en", 0)
	_, err := tr.Transcribe(context.Background(), audio)
	if err == nil {
		t.Fatal("expected error for missing model file")
	}

	var te *TranscriptionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranscriptionError, got %T", err)
	}
	if te.Path != audio {
		t.Errorf("error path = %q, want %q", te.Path, audio)
	}
}

func TestTranscriptionErrorWrapping(t *testing.T) {
	base := errors.New("boom")
	err := NewTranscriptionError("/tmp/a.mp3", base)

	if !errors.Is(err, base) {
		t.Error("wrapped error lost the cause")
	}
	if !IsTranscriptionError(fmt.Errorf("pipeline: %w", err)) {
		t.Error("IsTranscriptionError should see through further wrapping")
	}
	if NewTranscriptionError("/tmp/a.mp3", nil) != nil {
		t.Error("nil cause should yield nil error")
	}
}
