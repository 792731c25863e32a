package songs

import (
	"github.com/agentstation/utc"
)

// SongPatch is a partial song update. Nil fields are left untouched when the
// patch is applied; set fields overwrite the target wholesale, including set
// slices (a patch replaces a tag list, it does not merge into it).
type SongPatch struct {
	Title               *string
	Lyrics              *string
	Notes               *string
	SoundsLikeAcoustic  *string
	SoundsLikeRecording *string
	Status              *Status
	Themes              *[]string
	SuggestedVenues     *[]string
	Images              *[]Image
	AudioFiles          *[]AudioAsset
	CreatedAt           *utc.Time
	UpdatedAt           *utc.Time
}

// Apply merges the patch over a song, returning a new value. The input is not
// mutated.
func (p SongPatch) Apply(s Song) Song {
	out := *s.Copy()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Lyrics != nil {
		out.Lyrics = *p.Lyrics
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.SoundsLikeAcoustic != nil {
		out.SoundsLikeAcoustic = *p.SoundsLikeAcoustic
	}
	if p.SoundsLikeRecording != nil {
		out.SoundsLikeRecording = *p.SoundsLikeRecording
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Themes != nil {
		out.Themes = cloneStrings(*p.Themes)
	}
	if p.SuggestedVenues != nil {
		out.SuggestedVenues = cloneStrings(*p.SuggestedVenues)
	}
	if p.Images != nil {
		out.Images = make([]Image, len(*p.Images))
		copy(out.Images, *p.Images)
	}
	if p.AudioFiles != nil {
		out.AudioFiles = make([]AudioAsset, len(*p.AudioFiles))
		copy(out.AudioFiles, *p.AudioFiles)
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	return out
}

// Song builds a new song from the patch applied over defaults, keyed by id.
// Used by the upsert path when no song with the id exists yet.
func (p SongPatch) Song(id string) Song {
	s := p.Apply(Song{SongID: id})
	s.SongID = id
	return s
}

// PatchOf returns a full patch carrying every field of the song. Applying it
// over any target yields the song's state (with the target's song_id).
func PatchOf(s *Song) SongPatch {
	c := s.Copy()
	return SongPatch{
		Title:               &c.Title,
		Lyrics:              &c.Lyrics,
		Notes:               &c.Notes,
		SoundsLikeAcoustic:  &c.SoundsLikeAcoustic,
		SoundsLikeRecording: &c.SoundsLikeRecording,
		Status:              &c.Status,
		Themes:              &c.Themes,
		SuggestedVenues:     &c.SuggestedVenues,
		Images:              &c.Images,
		AudioFiles:          &c.AudioFiles,
		CreatedAt:           &c.CreatedAt,
		UpdatedAt:           &c.UpdatedAt,
	}
}
