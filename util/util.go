package util

import (
	"strings"
	"time"
)

const (
	// TimeLayout is the format timestamps are stored with in the database.
	TimeLayout = "2006-01-02 15:04:05"
	// DateLayout is the format of a calendar day without time component.
	DateLayout = "2006-01-02"
)

// FormatTime renders t the way the database stores timestamps.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day in the local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// SplitTags decodes a comma-joined tag list into a set of trimmed,
// non-empty strings. This is the single read-path codec for the
// denormalized tags column.
func SplitTags(joined string) []string {
	if joined == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the write-path counterpart of SplitTags.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if tag := strings.TrimSpace(t); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}
