package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	cases := []struct {
		url  string
		id   string
		want bool
	}{
		{"https://youtu.be/abc123", "abc123", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/xyz789?autoplay=1", "xyz789", true},
		{"https://youtu.be/abc123#chapter", "abc123", true},
		{"https://example.com/x", "", false},
		{"https://vimeo.com/12345", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		id, ok := ExtractYouTubeID(tc.url)
		assert.Equal(t, tc.want, ok, tc.url)
		assert.Equal(t, tc.id, id, tc.url)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "61:01", FormatDuration(3661))
	assert.Equal(t, "0:00", FormatDuration(-3))
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/login?next=/courses/c1/videos/v1", LoginRedirect("/api/courses/c1/videos/v1"))
	assert.Equal(t, "/login", LoginRedirect(""))
	assert.Equal(t, "/login", LoginRedirect("//evil.example"))
}
