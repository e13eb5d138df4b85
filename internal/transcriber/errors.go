package transcriber

import (
	"errors"
	"fmt"
)

// TranscriptionError wraps a failure to transcribe one audio file. The item
// is abandoned; the watch loop is unaffected.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	if e == nil || e.Err == nil {
		return "transcription error"
	}
	return fmt.Sprintf("transcribe %s: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewTranscriptionError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &TranscriptionError{Path: path, Err: err}
}

func IsTranscriptionError(err error) bool {
	var te *TranscriptionError
	return errors.As(err, &te)
}
