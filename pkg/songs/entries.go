package songs

import (
	"github.com/agentstation/utc"

	"github.com/egodevrjm/songstore/pkg/constants"
)

// CatalogEntry is the per-song summary record stored in the master catalog
// list. The list is kept sorted by title and deduplicated by song_id.
type CatalogEntry struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Status          Status   `json:"status"`
	Themes          []string `json:"themes"`
	SuggestedVenues []string `json:"suggested_venues"`
	CreatedAt       utc.Time `json:"created_at"`
	UpdatedAt       utc.Time `json:"updated_at"`
}

// NewCatalogEntry projects a song into its catalog summary.
func NewCatalogEntry(s *Song) CatalogEntry {
	return CatalogEntry{
		SongID:          s.SongID,
		Title:           s.Title,
		Status:          s.EffectiveStatus(),
		Themes:          emptyIfNil(s.Themes),
		SuggestedVenues: emptyIfNil(s.SuggestedVenues),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SearchEntry is the per-song record stored in the flattened search index.
// It carries a fixed-length lyrics excerpt in addition to the catalog fields.
type SearchEntry struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Status          Status   `json:"status"`
	Themes          []string `json:"themes"`
	SuggestedVenues []string `json:"suggested_venues"`
	LyricsExcerpt   string   `json:"lyrics_excerpt"`
	CreatedAt       utc.Time `json:"created_at"`
	UpdatedAt       utc.Time `json:"updated_at"`
}

// NewSearchEntry projects a song into its search-index record.
func NewSearchEntry(s *Song) SearchEntry {
	return SearchEntry{
		SongID:          s.SongID,
		Title:           s.Title,
		Status:          s.EffectiveStatus(),
		Themes:          emptyIfNil(s.Themes),
		SuggestedVenues: emptyIfNil(s.SuggestedVenues),
		LyricsExcerpt:   Excerpt(s.Lyrics, constants.LyricsExcerptLength),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// Excerpt returns the first n characters of text.
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// IndexEntry is the per-song record stored in theme, venue, and status index
// files. The populated fields differ per family: theme files carry the
// complementary venue list, venue files the theme list, and status files both
// tag lists with no status field.
type IndexEntry struct {
	Title           string   `json:"title"`
	Status          Status   `json:"status,omitempty"`
	Lyrics          string   `json:"lyrics"`
	Themes          []string `json:"themes,omitempty"`
	SuggestedVenues []string `json:"suggested_venues,omitempty"`
}

// NewThemeEntry projects a song into a theme-file record.
func NewThemeEntry(s *Song) IndexEntry {
	return IndexEntry{
		Title:           s.Title,
		Status:          s.EffectiveStatus(),
		Lyrics:          s.Lyrics,
		SuggestedVenues: emptyIfNil(s.SuggestedVenues),
	}
}

// NewVenueEntry projects a song into a venue-file record.
func NewVenueEntry(s *Song) IndexEntry {
	return IndexEntry{
		Title:  s.Title,
		Status: s.EffectiveStatus(),
		Lyrics: s.Lyrics,
		Themes: emptyIfNil(s.Themes),
	}
}

// NewStatusEntry projects a song into a status-file record.
func NewStatusEntry(s *Song) IndexEntry {
	return IndexEntry{
		Title:           s.Title,
		Lyrics:          s.Lyrics,
		Themes:          emptyIfNil(s.Themes),
		SuggestedVenues: emptyIfNil(s.SuggestedVenues),
	}
}

// ThemeIndex is the denormalized per-theme file: one entry per song carrying
// the theme, keyed by song_id, with song_count kept equal to the number of
// keys.
type ThemeIndex struct {
	Theme     string                `json:"theme"`
	SongCount int                   `json:"song_count"`
	Songs     map[string]IndexEntry `json:"songs"`
}

// NewThemeIndex returns an empty index for the given theme tag.
func NewThemeIndex(theme string) *ThemeIndex {
	return &ThemeIndex{Theme: theme, Songs: map[string]IndexEntry{}}
}

// Upsert sets the entry for a song and recomputes the count.
func (ti *ThemeIndex) Upsert(songID string, entry IndexEntry) {
	if ti.Songs == nil {
		ti.Songs = map[string]IndexEntry{}
	}
	ti.Songs[songID] = entry
	ti.SongCount = len(ti.Songs)
}

// VenueIndex is the denormalized per-venue file.
type VenueIndex struct {
	VenueType string                `json:"venue_type"`
	SongCount int                   `json:"song_count"`
	Songs     map[string]IndexEntry `json:"songs"`
}

// NewVenueIndex returns an empty index for the given venue tag.
func NewVenueIndex(venue string) *VenueIndex {
	return &VenueIndex{VenueType: venue, Songs: map[string]IndexEntry{}}
}

// Upsert sets the entry for a song and recomputes the count.
func (vi *VenueIndex) Upsert(songID string, entry IndexEntry) {
	if vi.Songs == nil {
		vi.Songs = map[string]IndexEntry{}
	}
	vi.Songs[songID] = entry
	vi.SongCount = len(vi.Songs)
}

// StatusIndex is the denormalized per-status file.
type StatusIndex struct {
	Status    Status                `json:"status"`
	SongCount int                   `json:"song_count"`
	Songs     map[string]IndexEntry `json:"songs"`
}

// NewStatusIndex returns an empty index for the given status value.
func NewStatusIndex(status Status) *StatusIndex {
	return &StatusIndex{Status: status, Songs: map[string]IndexEntry{}}
}

// Upsert sets the entry for a song and recomputes the count.
func (si *StatusIndex) Upsert(songID string, entry IndexEntry) {
	if si.Songs == nil {
		si.Songs = map[string]IndexEntry{}
	}
	si.Songs[songID] = entry
	si.SongCount = len(si.Songs)
}

// emptyIfNil keeps tag lists encoding as [] rather than null in index files.
func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
