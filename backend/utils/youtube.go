package utils

import (
	"fmt"
	"regexp"
)

var youTubePattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// ExtractYouTubeID pulls the embeddable id out of a watch, short or embed URL.
func ExtractYouTubeID(url string) (string, bool) {
	m := youTubePattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func YouTubeEmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
