package songs

import (
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string       { return &s }
func statusPtr(s Status) *Status    { return &s }
func tagsPtr(t ...string) *[]string { return &t }

func TestPatchApplyOverwritesOnlySetFields(t *testing.T) {
	base := Song{
		SongID: "red_dirt_road",
		Title:  "Red Dirt Road",
		Lyrics: "original lyrics",
		Notes:  "keep me",
		Status: StatusPrivate,
		Themes: []string{"hometown_roots"},
	}

	patch := SongPatch{
		Lyrics: strPtr("new lyrics"),
		Status: statusPtr(StatusPublic),
	}

	got := patch.Apply(base)

	assert.Equal(t, "new lyrics", got.Lyrics)
	assert.Equal(t, StatusPublic, got.Status)
	// Untouched fields survive.
	assert.Equal(t, "Red Dirt Road", got.Title)
	assert.Equal(t, "keep me", got.Notes)
	assert.Equal(t, []string{"hometown_roots"}, got.Themes)
	// Input not mutated.
	assert.Equal(t, "original lyrics", base.Lyrics)
	assert.Equal(t, StatusPrivate, base.Status)
}

func TestPatchApplyReplacesTagLists(t *testing.T) {
	base := Song{SongID: "x", Title: "X", Themes: []string{"family", "faith_spirituality"}}
	patch := SongPatch{Themes: tagsPtr("nostalgia")}

	got := patch.Apply(base)
	assert.Equal(t, []string{"nostalgia"}, got.Themes)
	assert.Equal(t, []string{"family", "faith_spirituality"}, base.Themes)
}

func TestPatchSongBuildsFromDefaults(t *testing.T) {
	patch := SongPatch{
		Title:  strPtr("Canyons Cry"),
		Lyrics: strPtr("down where the canyon cries"),
	}

	got := patch.Song("canyons_cry")

	require.Equal(t, "canyons_cry", got.SongID)
	assert.Equal(t, "Canyons Cry", got.Title)
	assert.Equal(t, "down where the canyon cries", got.Lyrics)
	assert.Empty(t, got.Themes)
	assert.Equal(t, StatusPrivate, got.EffectiveStatus())
}

func TestPatchOfRoundTrips(t *testing.T) {
	now := utc.Now()
	s := &Song{
		SongID:          "soul_food",
		Title:           "Soul Food",
		Lyrics:          "grits and gravy",
		Status:          StatusDraft,
		Themes:          []string{"family"},
		SuggestedVenues: []string{"house_concert"},
		Images:          []Image{{ID: "img1", Name: "plate.jpg", SHA: "abc"}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	got := PatchOf(s).Apply(Song{SongID: "soul_food"})
	assert.Equal(t, *s, got)
}

func TestPatchOfDoesNotAliasSource(t *testing.T) {
	s := &Song{SongID: "x", Title: "X", Themes: []string{"family"}}
	p := PatchOf(s)

	(*p.Themes)[0] = "nostalgia"
	assert.Equal(t, "family", s.Themes[0])
}
