package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple two-word name",
			input:    "Example Sans",
			expected: "example-sans",
		},
		{
			name:     "already lowercase",
			input:    "roboto",
			expected: "roboto",
		},
		{
			name:     "accented characters transliterate",
			input:    "Académie Légère",
			expected: "academie-legere",
		},
		{
			name:     "punctuation collapses to single hyphen",
			input:    "Foo & Bar!  Baz",
			expected: "foo-bar-baz",
		},
		{
			name:     "digits survive",
			input:    "Font 2000",
			expected: "font-2000",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    " (Fancy) ",
			expected: "fancy",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

// Same name must always map to the same directory across runs.
func TestSlugify_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Slugify("Playfair Display"), Slugify("Playfair Display"))
	}
}
