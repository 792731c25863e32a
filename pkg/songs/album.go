package songs

// Album groups songs by reference. The relationship is non-owning: an album
// lists song identifiers but the songs live independently in the catalog.
type Album struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist,omitempty"`
	Year          int      `json:"year,omitempty"`
	Description   string   `json:"description,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
	SongIDs       []string `json:"songIds,omitempty"`
}

// Contains reports whether the album references the given song.
func (a *Album) Contains(songID string) bool {
	for _, id := range a.SongIDs {
		if id == songID {
			return true
		}
	}
	return false
}
