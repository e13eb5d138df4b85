package language

import "testing"

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"es", true},
		{"zh", true},
		{"", true}, // auto-detect
		{"xx", false},
		{"english", false},
		{"EN", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsValidCode(tt.code); got != tt.want {
				t.Errorf("IsValidCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	all := List()
	if len(all) == 0 {
		t.Fatal("List() returned no languages")
	}

	seen := make(map[string]bool)
	for _, lang := range all {
		if lang.Code == "" {
			t.Error("List() should not include auto-detect")
		}
		if seen[lang.Code] {
			t.Errorf("duplicate language code %q", lang.Code)
		}
		seen[lang.Code] = true
	}
}
