package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "iPhone 12 Pro", "iPhone 12 Pro"},
		{"forbidden characters stripped", `Sofa <3> "deluxe" /new\ |? *`, "Sofa 3 deluxe new"},
		{"control characters stripped", "TV\x00 55\n inch", "TV 55 inch"},
		{"surrounding whitespace trimmed", "  Dining Table  ", "Dining Table"},
		{"empty input", "", ""},
		{"only forbidden characters", `<>:"/\|?*`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	if got := Sanitize(long); len(got) != 80 {
		t.Errorf("len = %d; want 80", len(got))
	}
}

func TestSanitizeCapsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("Ké", 100)
	got := Sanitize(long)
	if !utf8.ValidString(got) {
		t.Errorf("Sanitize produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("rune count = %d; want 80", n)
	}
}

func TestDedupKeyIsCaseInsensitive(t *testing.T) {
	a := DedupKey("iPhone 12 / 128GB")
	b := DedupKey("IPHONE 12  128gb")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}
