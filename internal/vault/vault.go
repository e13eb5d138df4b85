// Package vault files generated notes and their source audio into an
// Obsidian-style vault.
package vault

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/calebmatthews/vaultscribe/internal/note"
)

// AudioFolder is the fixed subfolder of the notes folder that archived
// recordings are moved into.
const AudioFolder = "audio"

// WriteError wraps a filesystem failure while filing one note. Terminal for
// the item; the source recording is left where it was.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	if e == nil || e.Err == nil {
		return "write error"
	}
	return e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewWriteError(err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Err: err}
}

func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// Writer files notes into <vault>/<notes folder> and audio into its audio
// subfolder.
type Writer struct {
	vaultPath   string
	notesFolder string
}

func NewWriter(vaultPath, notesFolder string) *Writer {
	return &Writer{
		vaultPath:   vaultPath,
		notesFolder: notesFolder,
	}
}

// NotesDir returns the absolute notes directory.
func (w *Writer) NotesDir() string {
	return filepath.Join(w.vaultPath, w.notesFolder)
}

// AudioDir returns the absolute audio archive directory.
func (w *Writer) AudioDir() string {
	return filepath.Join(w.NotesDir(), AudioFolder)
}

// File writes the note and archives the recording. The note is written
// first; the audio is moved only after the note exists, so a failed write
// leaves the recording untouched in the watch folder. Returns the absolute
// path of the filed note.
func (w *Writer) File(n *note.Generated, finalTags []string, audioPath string, now time.Time) (string, error) {
	notesDir := w.NotesDir()
	audioDir := w.AudioDir()

	if err := os.MkdirAll(audioDir, 0755); err != nil {
		return "", NewWriteError(fmt.Errorf("create vault directories: %w", err))
	}

	audioName, err := w.reserveAudioName(filepath.Base(audioPath))
	if err != nil {
		return "", err
	}

	content, err := note.Render(n, note.RenderOptions{
		Tags:      finalTags,
		AudioLink: AudioFolder + "/" + audioName,
		Created:   now,
	})
	if err != nil {
		return "", NewWriteError(err)
	}

	notePath, err := w.reserveNotePath(notesDir, now, n.Title)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(notePath, []byte(content), 0644); err != nil {
		return "", NewWriteError(fmt.Errorf("write note: %w", err))
	}

	if err := moveFile(audioPath, filepath.Join(audioDir, audioName)); err != nil {
		// the note exists but the recording stayed behind
		return notePath, NewWriteError(fmt.Errorf("archive audio: %w", err))
	}

	log.Printf("Vault: filed %s (audio %s)", notePath, audioName)
	return notePath, nil
}

// reserveNotePath resolves the yyyy-MM-dd-<slug>.md filename, disambiguating
// same-day collisions with a numeric suffix (-2, -3, ...).
func (w *Writer) reserveNotePath(notesDir string, date time.Time, title string) (string, error) {
	base := note.Filename(date, title)
	candidate := filepath.Join(notesDir, base)
	if !exists(candidate) {
		return candidate, nil
	}

	stem := strings.TrimSuffix(base, ".md")
	for i := 2; i < 1000; i++ {
		candidate = filepath.Join(notesDir, fmt.Sprintf("%s-%d.md", stem, i))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", NewWriteError(fmt.Errorf("no free filename for %s", base))
}

// reserveAudioName disambiguates an archived audio filename the same way.
func (w *Writer) reserveAudioName(base string) (string, error) {
	if !exists(filepath.Join(w.AudioDir(), base)) {
		return base, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; i < 1000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if !exists(filepath.Join(w.AudioDir(), candidate)) {
			return candidate, nil
		}
	}
	return "", NewWriteError(fmt.Errorf("no free archive name for %s", base))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// moveFile renames src to dst, falling back to copy+remove when the vault
// lives on a different filesystem than the watch folder.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}
	return nil
}

// copyFile streams src to dst, preserving the file mode; long recordings
// never sit in memory whole.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}
