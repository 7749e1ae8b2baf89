package generation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Limits applied to generated titles.
const (
	MaxTitleLength = 100
	MaxTasks       = 10
)

var fenceMarker = regexp.MustCompile("```(?:json)?\n?")

// CleanResponse removes markdown code-fence markers and surrounding whitespace.
func CleanResponse(text string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(text, ""))
}

// ParseTaskTitles parses cleaned model output into normalized titles.
//
// Elements that are not strings, or are blank after trimming, are dropped.
// Titles are trimmed and cut to MaxTitleLength runes, and at most MaxTasks
// titles are kept in their original order. An array whose elements are all
// dropped yields an empty slice and no error.
func ParseTaskTitles(cleaned string) ([]string, error) {
	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, NewError(KindMalformedResponse, err)
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, NewError(KindInvalidTaskList, errors.New("top-level value is not an array"))
	}
	if len(items) == 0 {
		return nil, NewError(KindInvalidTaskList, errors.New("array is empty"))
	}

	titles := make([]string, 0, min(len(items), MaxTasks))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		titles = append(titles, truncateRunes(s, MaxTitleLength))
		if len(titles) == MaxTasks {
			break
		}
	}
	return titles, nil
}

func truncateRunes(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
