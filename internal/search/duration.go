package search

import (
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts a YouTube-style ISO-8601 duration (PT#H#M#S, each
// component optional) to whole seconds. Missing components count as zero;
// unparseable input yields 0.
func parseISODuration(raw string) int {
	matches := isoDurationPattern.FindStringSubmatch(raw)
	if matches == nil {
		return 0
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])

	return hours*3600 + minutes*60 + seconds
}
