package youtube

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=abc_DEF-123", "abc_DEF-123"},
		{"id after slash", "/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	inputs := []string{
		"",
		"not a url",
		"https://www.youtube.com/watch?v=tooshort",
		"https://example.com/",
		"dQw4w9WgXcQ", // bare ID without v= or / marker
	}

	for _, in := range inputs {
		if _, err := ExtractVideoID(in); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ExtractVideoID(%q) error = %v, want ErrInvalidURL", in, err)
		}
	}
}
