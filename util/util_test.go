package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{"a"}, SplitTags("a"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitTags("a,b,c"))
	// Whitespace and empty segments are dropped.
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a , , b ,"))
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", JoinTags(nil))
	assert.Equal(t, "", JoinTags([]string{"", "  "}))
	assert.Equal(t, "a,b", JoinTags([]string{" a ", "b"}))
}

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"favorite", "philosophy", "reread"}
	assert.Equal(t, tags, SplitTags(JoinTags(tags)))
}

func TestFormatAndParseDate(t *testing.T) {
	day := time.Date(2026, 8, 20, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2026-08-20", FormatDate(day))
	assert.Equal(t, "2026-08-20 23:59:00", FormatTime(day))

	parsed, err := ParseDate("2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.August, parsed.Month())
	assert.Equal(t, 20, parsed.Day())

	_, err = ParseDate("20/08/2026")
	assert.Error(t, err)
}
