package tags

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFromMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allowed_tags.md")
	content := `# Allowed tags

- #meeting
- #journal
- #work/project-alpha
- #voicenote/ideas
- #meeting
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path, "voicenote")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// existing namespace prefix stripped, duplicates collapsed
	want := []string{"meeting", "journal", "work/project-alpha", "ideas"}
	if !reflect.DeepEqual(set.All(), want) {
		t.Errorf("All() = %v, want %v", set.All(), want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "nope.md"), "voicenote")
	if err != nil {
		t.Fatalf("Load of missing file should not error, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set, got %d tags", set.Len())
	}
	// empty allow-list drops everything
	if got := set.Constrain([]string{"meeting", "rant"}); got != nil {
		t.Errorf("empty set should drop all proposals, got %v", got)
	}
}

func TestConstrain(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		proposed []string
		want     []string
	}{
		{
			name:     "disallowed tag dropped",
			allowed:  []string{"meeting", "journal"},
			proposed: []string{"meeting", "rant"},
			want:     []string{"voicenote/meeting"},
		},
		{
			name:     "case-insensitive match keeps canonical form",
			allowed:  []string{"Meeting"},
			proposed: []string{"MEETING"},
			want:     []string{"voicenote/Meeting"},
		},
		{
			name:     "hierarchical path exact match",
			allowed:  []string{"work/project-alpha"},
			proposed: []string{"work/project-alpha", "work", "work/project-beta"},
			want:     []string{"voicenote/work/project-alpha"},
		},
		{
			name:     "leading hash tolerated on proposals",
			allowed:  []string{"journal"},
			proposed: []string{"#journal"},
			want:     []string{"voicenote/journal"},
		},
		{
			name:     "prefix never doubled",
			allowed:  []string{"ideas"},
			proposed: []string{"voicenote/ideas", "#voicenote/ideas", "ideas"},
			want:     []string{"voicenote/ideas"},
		},
		{
			name:     "no fuzzy matching",
			allowed:  []string{"meeting"},
			proposed: []string{"meetings", "meet"},
			want:     nil,
		},
		{
			name:     "empty proposals",
			allowed:  []string{"meeting"},
			proposed: []string{"", "  ", "#"},
			want:     nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set := NewSet(tc.allowed, "voicenote")
			got := set.Constrain(tc.proposed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Constrain(%v) = %v, want %v", tc.proposed, got, tc.want)
			}
		})
	}
}

func TestConstrainIdempotentPrefix(t *testing.T) {
	set := NewSet([]string{"meeting"}, "voicenote")

	first := set.Constrain([]string{"meeting"})
	// feed the already-namespaced result straight back in
	second := set.Constrain(first)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("prefixing not idempotent: %v then %v", first, second)
	}
	if first[0] != "voicenote/meeting" {
		t.Errorf("unexpected namespaced tag %q", first[0])
	}
}
