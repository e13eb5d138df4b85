package note

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Weekly Planning",
			expected: "weekly-planning",
		},
		{
			name:     "punctuation stripped",
			title:    "Ideas: what's next?",
			expected: "ideas-whats-next",
		},
		{
			name:     "underscores and repeated spaces",
			title:    "project_alpha   status  update",
			expected: "project-alpha-status-update",
		},
		{
			name:     "leading and trailing noise",
			title:    "  --Meeting Notes--  ",
			expected: "meeting-notes",
		},
		{
			name:     "unicode dropped",
			title:    "café läuft",
			expected: "caf-luft",
		},
		{
			name:     "empty title falls back",
			title:    "???",
			expected: "untitled",
		},
		{
			name:     "long title capped",
			title:    strings.Repeat("very long title ", 10),
			expected: strings.Trim(strings.Repeat("very-long-title-", 10)[:MaxSlugLen], "-"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.title)
			if got != tc.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.expected)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "Groceries & Errands for Saturday"
	first := Slugify(title)
	for i := 0; i < 10; i++ {
		if got := Slugify(title); got != first {
			t.Fatalf("slug changed between runs: %q vs %q", first, got)
		}
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	got := Filename(date, "Morning Standup Notes")
	want := "2025-03-14-morning-standup-notes.md"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}

	// same date + same title must always yield the same name
	if again := Filename(date, "Morning Standup Notes"); again != got {
		t.Errorf("Filename not deterministic: %q vs %q", got, again)
	}
}

func TestRender(t *testing.T) {
	n := &Generated{
		Title: "Garden Plans",
		Body:  "Plant tomatoes next to the fence.",
		Todos: []string{"buy seeds", "fix the hose"},
	}
	opts := RenderOptions{
		Tags:      []string{"voicenote/garden", "voicenote/home"},
		AudioLink: "audio/recording-001.m4a",
		Created:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	out, err := Render(n, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"---\n",
		"title: Garden Plans",
		"created: \"2025-03-14T09:30:00Z\"",
		"- voicenote/garden",
		"- voicenote/home",
		"source: recording-001.m4a",
		"# Garden Plans",
		"Plant tomatoes next to the fence.",
		"#voicenote/garden #voicenote/home",
		"- [ ] buy seeds",
		"- [ ] fix the hose",
		"![[audio/recording-001.m4a]]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered note missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNoTagsNoTodos(t *testing.T) {
	n := &Generated{Title: "Quick Thought", Body: "Remember the thing."}
	out, err := Render(n, RenderOptions{
		AudioLink: "audio/x.wav",
		Created:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "## Tags") {
		t.Error("expected no Tags section for empty tag list")
	}
	if strings.Contains(out, "## Tasks") {
		t.Error("expected no Tasks section for empty todo list")
	}
	if !strings.Contains(out, "![[audio/x.wav]]") {
		t.Error("expected audio embed link")
	}
}
