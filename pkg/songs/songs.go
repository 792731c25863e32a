package songs

import (
	"fmt"
	"sync"
)

// Songs is a concurrent safe map of songs keyed by song_id.
type Songs struct {
	mu    sync.RWMutex
	songs map[string]*Song
}

// SongsOption defines a function that configures a Songs instance.
type SongsOption func(*Songs)

// WithSongsCapacity sets the initial capacity of the songs map.
func WithSongsCapacity(capacity int) SongsOption {
	return func(s *Songs) {
		s.songs = make(map[string]*Song, capacity)
	}
}

// NewSongs creates a new Songs map with optional configuration.
func NewSongs(opts ...SongsOption) *Songs {
	s := &Songs{
		songs: make(map[string]*Song),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns a song by id and whether it exists.
func (s *Songs) Get(id string) (*Song, bool) {
	s.mu.RLock()
	song, ok := s.songs[id]
	s.mu.RUnlock()
	return song, ok
}

// Set sets a song by id (upsert). Returns an error if song is nil.
func (s *Songs) Set(id string, song *Song) error {
	if song == nil {
		return fmt.Errorf("song cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.songs[id] = song
	return nil
}

// Delete removes a song by id. Returns an error if the song doesn't exist.
func (s *Songs) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.songs[id]; !exists {
		return fmt.Errorf("song with ID %s not found", id)
	}

	delete(s.songs, id)
	return nil
}

// Len returns the number of songs.
func (s *Songs) Len() int {
	s.mu.RLock()
	length := len(s.songs)
	s.mu.RUnlock()
	return length
}

// List returns a slice of all songs.
func (s *Songs) List() []*Song {
	s.mu.RLock()
	songs := make([]*Song, 0, len(s.songs))
	for _, song := range s.songs {
		songs = append(songs, song)
	}
	s.mu.RUnlock()
	return songs
}

// Filter returns the songs for which keep returns true.
func (s *Songs) Filter(keep func(*Song) bool) []*Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Song
	for _, song := range s.songs {
		if keep(song) {
			out = append(out, song)
		}
	}
	return out
}
