package playlist

import (
	"regexp"
	"strings"

	"moodlist/internal/models"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// normalizeTitle lowercases, strips punctuation, and collapses whitespace so
// near-identical titles ("Song (Official Audio)" vs "song official audio")
// collide.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWordPattern.ReplaceAllString(t, "")
	t = whitespacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Dedupe removes tracks that collide on provider ID or normalized title. The
// first occurrence wins; input order is preserved. Dedupe is pure and
// idempotent.
func Dedupe(tracks []models.Track) []models.Track {
	seenIDs := make(map[string]bool, len(tracks))
	seenTitles := make(map[string]bool, len(tracks))

	unique := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		title := normalizeTitle(t.Title)
		if seenIDs[t.ID] || seenTitles[title] {
			continue
		}
		seenIDs[t.ID] = true
		seenTitles[title] = true
		unique = append(unique, t)
	}
	return unique
}
