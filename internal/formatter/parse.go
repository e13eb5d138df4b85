package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calebmatthews/vaultscribe/internal/note"
)

// ParseResponse extracts the structured note from free-form model output.
// Models wrap JSON in code fences or chat around it often enough that we
// locate the outermost object before decoding. Anything that still fails to
// decode, or decodes without a title, is a FormatError.
func ParseResponse(raw string) (*note.Generated, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, NewFormatError(fmt.Errorf("no JSON object in model output: %.80q", raw))
	}

	var n note.Generated
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return nil, NewFormatError(fmt.Errorf("decode model output: %w", err))
	}

	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)
	if n.Title == "" {
		return nil, NewFormatError(fmt.Errorf("model output has no title"))
	}
	if n.Body == "" {
		return nil, NewFormatError(fmt.Errorf("model output has no content"))
	}
	return &n, nil
}

// extractJSON returns the outermost {...} object in s, or "".
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
