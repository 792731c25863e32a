package songs

import (
	"github.com/agentstation/utc"
)

// Image is a media attachment on a song. An image that has been persisted to
// the remote store carries its remote path, digest, and host URLs; an image
// without a SHA exists only in local state.
type Image struct {
	ID       string    `json:"id"`                 // Unique within the song
	Name     string    `json:"name"`               // Original filename
	Filename string    `json:"filename,omitempty"` // Remote store path once uploaded
	URL      string    `json:"url"`                // Download URL or data URL
	HTMLURL  string    `json:"githubUrl,omitempty"`
	SHA      string    `json:"sha,omitempty"` // Remote content digest, empty when unsynced
	Size     int64     `json:"size,omitempty"`
	Type     string    `json:"type,omitempty"` // MIME type
	Uploaded *utc.Time `json:"uploadedAt,omitempty"`
}

// Synced reports whether the image has been persisted to the remote store.
// A synced image must be deleted remotely before it is dropped from the song.
func (img *Image) Synced() bool {
	return img.SHA != ""
}

// AudioAsset is an audio attachment on a song. Audio is held locally and is
// not synced to the remote store.
type AudioAsset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}
