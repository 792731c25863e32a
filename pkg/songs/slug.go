package songs

import (
	"regexp"
	"strings"

	"github.com/egodevrjm/songstore/pkg/constants"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	tagWhitespce = regexp.MustCompile(`\s+`)
)

// MakeSongID derives a song identifier from a title: lowercase, strip every
// character outside [a-z0-9 ], collapse whitespace runs to a single
// underscore, and truncate. The result is stable for a given title and, once
// assigned to a song, never changes.
func MakeSongID(title string) string {
	id := strings.ToLower(title)
	id = slugStrip.ReplaceAllString(id, "")
	id = slugSpaces.ReplaceAllString(strings.TrimSpace(id), "_")
	if len(id) > constants.SongIDMaxLength {
		id = id[:constants.SongIDMaxLength]
	}
	return id
}

// NormalizeTag normalizes a user-entered theme or venue tag to the form used
// as a remote file name: lowercase with whitespace runs replaced by
// underscores.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return tagWhitespce.ReplaceAllString(tag, "_")
}
