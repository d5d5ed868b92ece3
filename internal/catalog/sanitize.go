package catalog

import (
	"strconv"
	"strings"
)

// ParseRating turns free rating text into an optional rating. Blank or
// unparsable text means unrated; numeric values are clamped to [0,10].
// The 0.5 step is a form affordance, not enforced here.
func ParseRating(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return &n
}

// ParseChapter turns free chapter text into an optional counter. Blank or
// unparsable text means untracked; negative values are clamped to zero.
func ParseChapter(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return &n
}
