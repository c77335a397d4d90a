package search

import (
	"regexp"
	"sort"
)

// Whole-word signals classifying a title as an audio-only upload versus a
// music video. Titles matching neither sort between the two classes.
var (
	audioSignalPattern = regexp.MustCompile(`(?i)\b(audio|topic)\b`)
	videoSignalPattern = regexp.MustCompile(`(?i)\b(music video|official video|video|mv)\b`)
)

// rankByAudioPreference sorts audio-signal titles ahead of neutral titles,
// with video-signal titles last. The sort is stable: provider order is
// preserved within each class, and re-ranking an already ranked list is a
// no-op.
func rankByAudioPreference(videos []ResolvedVideo) []ResolvedVideo {
	sort.SliceStable(videos, func(i, j int) bool {
		return audioClass(videos[i].Title) < audioClass(videos[j].Title)
	})
	return videos
}

func audioClass(title string) int {
	switch {
	case audioSignalPattern.MatchString(title):
		return 0
	case videoSignalPattern.MatchString(title):
		return 2
	default:
		return 1
	}
}
