package timeblock

import (
	"strings"
)

// CreateTimeBlockLine renders r as a schedule line:
//
//	<todoChar> <start>-<end> <title>[ <timeBlockTag>][ <mustContain>]
//
// The must-contain string is only appended when the line lacks it. An
// untitled range renders as "".
func CreateTimeBlockLine(r Range, cfg Config) string {
	content := strings.TrimSpace(r.Title)
	if content == "" {
		return ""
	}
	if cfg.RemoveDuration {
		content = RemoveDurationMarker(content, cfg.DurationMarker)
	}

	parts := make([]string, 0, 4)
	if cfg.TodoChar != "" {
		parts = append(parts, cfg.TodoChar)
	}
	parts = append(parts, r.Start+"-"+r.End)
	if content != "" {
		parts = append(parts, content)
	}
	if cfg.TimeBlockTag != "" {
		parts = append(parts, cfg.TimeBlockTag)
	}
	line := strings.Join(parts, " ")

	if mc := cfg.TimeblockTextMustContainString; mc != "" && !strings.Contains(line, mc) {
		line += " " + mc
	}
	return line
}
