package github

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/egodevrjm/songstore/pkg/constants"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SafeFilename lowercases a filename and replaces every character outside
// [a-zA-Z0-9.-] with an underscore, keeping the extension intact.
func SafeFilename(name string) string {
	return strings.ToLower(unsafeFilenameChars.ReplaceAllString(name, "_"))
}

// MediaPath builds the remote store path for a song's uploaded media file:
// images/songs/<song_id>/<timestamp>_<safe-name>. The millisecond timestamp
// keeps repeated uploads of the same filename from colliding.
func MediaPath(songID, name string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s", constants.ImagesDir, songID, now.UnixMilli(), SafeFilename(name))
}
