// Package tags pulls #hashtags and @mentions out of free text.
package tags

import (
	"regexp"
	"strings"
)

// Tags found in a line of text, in order of first appearance.
type Tags struct {
	Hashtags []string `json:"hashtags"`
	Mentions []string `json:"mentions"`
}

var (
	hashtagPattern = regexp.MustCompile(`(^|[^\p{L}\p{N}_#])#([\p{L}\p{N}_][\p{L}\p{N}_\-/]*)`)
	mentionPattern = regexp.MustCompile(`(^|[^\p{L}\p{N}_@])@([\p{L}\p{N}_][\p{L}\p{N}_\-/]*(?:\([^)]*\))?)`)
)

// Extract returns the hashtags and mentions in text. Returned tags carry
// their leading '#' or '@'. Trailing '-' and '/' are trimmed and duplicates
// are dropped.
func Extract(text string) Tags {
	return Tags{
		Hashtags: collect(hashtagPattern, text, "#"),
		Mentions: collect(mentionPattern, text, "@"),
	}
}

// HasHashtag reports whether text carries the hashtag name, ignoring case.
// The name may be given with or without its leading '#'.
func HasHashtag(text, name string) bool {
	want := "#" + strings.TrimPrefix(name, "#")
	for _, h := range Extract(text).Hashtags {
		if strings.EqualFold(h, want) {
			return true
		}
	}
	return false
}

func collect(re *regexp.Regexp, text, prefix string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimRight(m[2], "-/")
		if name == "" {
			continue
		}
		tag := prefix + name
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
