// Package songs defines the core data model for the songwriter catalog:
// songs, albums, media attachments, and the denormalized index shapes
// persisted to the remote content store.
//
// A Song's identifier is derived from its title once at creation time and is
// the immutable key for every remote artifact referencing the song: the song
// file itself, catalog and search entries, and per-theme/venue/status index
// entries.
package songs

import (
	"github.com/agentstation/utc"

	"github.com/egodevrjm/songstore/pkg/errors"
)

// Status is the visibility state of a song.
type Status string

// Song status values.
const (
	// StatusPrivate marks a song visible only to the writer.
	StatusPrivate Status = "private"
	// StatusPublic marks a song as published.
	StatusPublic Status = "public"
	// StatusDraft marks an unfinished song.
	StatusDraft Status = "draft"
)

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPrivate, StatusPublic, StatusDraft:
		return true
	}
	return false
}

// DefaultStatus is applied when a song record carries no status.
const DefaultStatus = StatusPrivate

// Song is the central catalog entity.
type Song struct {
	// Core identity
	SongID string `json:"song_id"` // Stable identifier, remote file-path key and URL slug
	Title  string `json:"title"`   // Display title (must not be empty)

	// Content
	Lyrics              string `json:"lyrics,omitempty"`
	Notes               string `json:"notes,omitempty"`
	SoundsLikeAcoustic  string `json:"sounds_like_acoustic,omitempty"`
	SoundsLikeRecording string `json:"sounds_like_recording,omitempty"`

	// Classification
	Status          Status   `json:"status,omitempty"`           // private, public, or draft
	Themes          []string `json:"themes,omitempty"`           // normalized theme tags
	SuggestedVenues []string `json:"suggested_venues,omitempty"` // normalized venue tags

	// Media
	Images     []Image      `json:"images,omitempty"`      // ordered, remote-synced when SHA is set
	AudioFiles []AudioAsset `json:"audio_files,omitempty"` // ordered, locally held only

	// Timestamps for record keeping
	CreatedAt utc.Time `json:"created_at"`
	UpdatedAt utc.Time `json:"updated_at"`
}

// EffectiveStatus returns the song's status, falling back to DefaultStatus
// when none is recorded.
func (s *Song) EffectiveStatus() Status {
	if s.Status == "" {
		return DefaultStatus
	}
	return s.Status
}

// HasTheme reports whether the song carries the given theme tag.
func (s *Song) HasTheme(tag string) bool {
	for _, t := range s.Themes {
		if t == tag {
			return true
		}
	}
	return false
}

// HasVenue reports whether the song is suggested for the given venue tag.
func (s *Song) HasVenue(tag string) bool {
	for _, v := range s.SuggestedVenues {
		if v == tag {
			return true
		}
	}
	return false
}

// Path returns the song's file path in the remote store.
func (s *Song) Path() string {
	return "songs/" + s.SongID + ".json"
}

// Validate checks the presence of required fields. It is the gate run before
// any remote write: a song failing validation must never reach the content
// host.
func (s *Song) Validate() error {
	if s.Title == "" {
		return errors.NewValidationError("title", s.Title, "title is required")
	}
	if s.SongID == "" {
		return errors.NewValidationError("song_id", s.SongID, "song_id is required")
	}
	if s.Status != "" && !s.Status.Valid() {
		return errors.NewValidationError("status", s.Status, "status must be private, public, or draft")
	}
	return nil
}

// Copy returns a deep copy of the song. Slices are cloned so the copy can be
// mutated without aliasing the original.
func (s *Song) Copy() *Song {
	if s == nil {
		return nil
	}
	out := *s
	out.Themes = cloneStrings(s.Themes)
	out.SuggestedVenues = cloneStrings(s.SuggestedVenues)
	if s.Images != nil {
		out.Images = make([]Image, len(s.Images))
		copy(out.Images, s.Images)
	}
	if s.AudioFiles != nil {
		out.AudioFiles = make([]AudioAsset, len(s.AudioFiles))
		copy(out.AudioFiles, s.AudioFiles)
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
