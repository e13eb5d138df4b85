package tui

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "*.m4a, *.mp3", []string{"*.m4a", "*.mp3"}},
		{"extra whitespace", "  *.wav ,, *.ogg ", []string{"*.wav", "*.ogg"}},
		{"empty", "", nil},
		{"only separators", " , , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	validate := required("vault path")

	if err := validate("  "); err == nil {
		t.Error("expected error for blank value")
	}
	if err := validate("/home/user/vault"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
