// Package constants provides shared constants used throughout the songstore codebase.
// This includes timeouts, limits, file permissions, and remote-store layout values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the content host
	DefaultHTTPTimeout = 30 * time.Second

	// LoadTimeout is the timeout for a full catalog fan-out load
	LoadTimeout = 2 * time.Minute

	// PublishTimeout is the timeout for publishing all index families for one song
	PublishTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// Remote store layout constants
const (
	// DefaultBranch is the branch written to when none is configured
	DefaultBranch = "main"

	// CatalogPath is the path of the master catalog list in the remote store
	CatalogPath = "catalog.json"

	// SearchPath is the path of the flattened search index in the remote store
	SearchPath = "search.json"

	// AlbumsPath is the path of the albums list in the remote store
	AlbumsPath = "albums.json"

	// SongsDir is the directory holding one JSON file per song
	SongsDir = "songs"

	// ThemesDir is the directory holding one JSON file per theme tag
	ThemesDir = "themes"

	// VenuesDir is the directory holding one JSON file per venue tag
	VenuesDir = "venues"

	// StatusDir is the directory holding one JSON file per status value
	StatusDir = "status"

	// ImagesDir is the directory holding uploaded song media
	ImagesDir = "images/songs"
)

// Limit constants define various limits and capacities
const (
	// SongIDMaxLength is the maximum length of a song identifier derived from a title
	SongIDMaxLength = 50

	// LyricsExcerptLength is the number of lyric characters carried by a search entry
	LyricsExcerptLength = 200
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
