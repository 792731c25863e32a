// Package store implements the in-memory song catalog: a snapshot of songs,
// albums, and tag indexes assembled by a concurrent fan-out load across many
// small remote JSON files, with optimistic local upserts between reloads.
//
// The store is an explicitly owned object, injected into its consumers.
// Consumers hold a reference and subscribe to snapshot replacement events;
// there is no ambient singleton. The remote content store remains the
// durable source of truth: the snapshot is a cache that can diverge until
// the next reload.
package store

import (
	"context"
	"sync"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/logging"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// Fetcher retrieves one published JSON document by repository-relative path.
// Implementations report a missing document with an error satisfying
// errors.IsNotFound.
type Fetcher interface {
	JSON(ctx context.Context, path string, v any) error
}

// Snapshot is one coherent view of the catalog. It is replaced wholesale by
// a load and never partially mutated except through the upsert path.
type Snapshot struct {
	Songs  *songs.Songs
	Albums []songs.Album
	Themes map[string]*songs.ThemeIndex
	Venues map[string]*songs.VenueIndex
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Songs:  songs.NewSongs(),
		Themes: map[string]*songs.ThemeIndex{},
		Venues: map[string]*songs.VenueIndex{},
	}
}

// Store owns the in-memory catalog for the lifetime of a session.
type Store struct {
	fetcher  Fetcher
	manifest []string
	themeIDs []string
	venueIDs []string

	mu       sync.RWMutex
	snapshot *Snapshot
	loading  bool
	lastErr  error
	loadGen  uint64

	hooks hooks
}

// Option configures a Store.
type Option func(*Store)

// WithSongManifest overrides the fallback song-id list used when the remote
// catalog summary cannot be fetched.
func WithSongManifest(ids []string) Option {
	return func(s *Store) {
		s.manifest = ids
	}
}

// WithThemes overrides the fixed set of theme files fetched during a load.
func WithThemes(ids []string) Option {
	return func(s *Store) {
		s.themeIDs = ids
	}
}

// WithVenues overrides the fixed set of venue files fetched during a load.
func WithVenues(ids []string) Option {
	return func(s *Store) {
		s.venueIDs = ids
	}
}

// New creates a store reading from the given fetcher. The store starts with
// an empty snapshot; call Load to populate it.
func New(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher:  fetcher,
		manifest: DefaultSongManifest,
		themeIDs: DefaultThemes,
		venueIDs: DefaultVenues,
		snapshot: NewSnapshot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the most recent completed load, if any.
// Per-entity fetch failures inside the fan-out are not recorded here; only a
// failure of the top-level catalog fetch is.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Songs returns all songs in the current snapshot.
func (s *Store) Songs() []*songs.Song {
	return s.current().Songs.List()
}

// Albums returns the albums in the current snapshot.
func (s *Store) Albums() []songs.Album {
	snap := s.current()
	out := make([]songs.Album, len(snap.Albums))
	copy(out, snap.Albums)
	return out
}

// Themes returns the loaded theme indexes keyed by tag.
func (s *Store) Themes() map[string]*songs.ThemeIndex {
	snap := s.current()
	out := make(map[string]*songs.ThemeIndex, len(snap.Themes))
	for k, v := range snap.Themes {
		out[k] = v
	}
	return out
}

// Venues returns the loaded venue indexes keyed by tag.
func (s *Store) Venues() map[string]*songs.VenueIndex {
	snap := s.current()
	out := make(map[string]*songs.VenueIndex, len(snap.Venues))
	for k, v := range snap.Venues {
		out[k] = v
	}
	return out
}

// FindByID returns a copy of the song with the given id, if present.
func (s *Store) FindByID(id string) (*songs.Song, bool) {
	song, ok := s.current().Songs.Get(id)
	if !ok {
		return nil, false
	}
	return song.Copy(), true
}

// FindByTheme returns the songs carrying the given theme tag.
func (s *Store) FindByTheme(tag string) []*songs.Song {
	return s.current().Songs.Filter(func(song *songs.Song) bool {
		return song.HasTheme(tag)
	})
}

// FindByVenue returns the songs suggested for the given venue tag.
func (s *Store) FindByVenue(tag string) []*songs.Song {
	return s.current().Songs.Filter(func(song *songs.Song) bool {
		return song.HasVenue(tag)
	})
}

// Upsert applies a patch to the song with the given id, or creates the song
// from the patch if it is not present. This is a synchronous, local-only
// mutation: it does not contact the remote store and does not imply the
// corresponding remote write succeeded. Callers follow the save ordering
// contract: durable remote write first, then Upsert, then Reload.
func (s *Store) Upsert(id string, patch songs.SongPatch) {
	s.mu.Lock()
	snap := s.snapshot

	var old *songs.Song
	var updated songs.Song
	if existing, ok := snap.Songs.Get(id); ok {
		old = existing.Copy()
		updated = patch.Apply(*existing)
		updated.SongID = id
	} else {
		updated = patch.Song(id)
	}
	_ = snap.Songs.Set(id, &updated)
	s.mu.Unlock()

	s.hooks.notifyUpsert(old, updated)
}

// Delete removes the song with the given id from the snapshot. Like Upsert
// this is local-only and follows the durable remote delete; the next reload
// converges anything the snapshot still gets wrong. Reports whether the song
// was present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	err := s.snapshot.Songs.Delete(id)
	s.mu.Unlock()
	return err == nil
}

// current returns the live snapshot.
func (s *Store) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Load assembles a fresh snapshot from the remote source: it resolves the
// song-id manifest (the catalog summary when fetchable, the built-in list
// otherwise), fans out one fetch per song, theme, and venue plus one for
// albums, and replaces the snapshot in a single assignment. A missing
// per-entity file drops that entity from the snapshot; only an unexpected
// failure of the top-level catalog fetch fails the load.
//
// A load that is superseded by a later Load or Reload discards its result
// instead of racing to assign the snapshot.
func (s *Store) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	s.mu.Lock()
	s.loading = true
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	log := logging.FromContext(ctx)

	ids, err := s.resolveManifest(ctx)
	if err != nil {
		s.mu.Lock()
		if gen == s.loadGen {
			s.lastErr = err
			s.loading = false
		}
		s.mu.Unlock()
		return err
	}

	snap := s.fanOut(ctx, ids)

	s.mu.Lock()
	if gen != s.loadGen {
		// A later load superseded this one; its snapshot wins.
		s.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("Discarding superseded load")
		return nil
	}
	s.snapshot = snap
	s.lastErr = nil
	s.loading = false
	s.mu.Unlock()

	log.Info().
		Int("songs", snap.Songs.Len()).
		Int("albums", len(snap.Albums)).
		Int("themes", len(snap.Themes)).
		Int("venues", len(snap.Venues)).
		Msg("Catalog snapshot replaced")

	s.hooks.notifyReplace(snap)
	return nil
}

// Reload is Load, exposed so callers can force reconciliation with the
// remote store after a write.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// resolveManifest fetches the catalog summary and falls back to the built-in
// song-id list when the summary is absent.
func (s *Store) resolveManifest(ctx context.Context) ([]string, error) {
	var entries []songs.CatalogEntry
	err := s.fetcher.JSON(ctx, constants.CatalogPath, &entries)
	switch {
	case err == nil && len(entries) > 0:
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.SongID)
		}
		return ids, nil
	case err == nil || errors.IsNotFound(err):
		logging.FromContext(ctx).Warn().Msg("Catalog summary unavailable, using built-in manifest")
		return s.manifest, nil
	default:
		return nil, errors.WrapResource("load", "catalog", constants.CatalogPath, err)
	}
}

// fanOut issues every per-entity fetch concurrently and aggregates all
// settled results into one snapshot. Individual failures degrade the
// snapshot; they never fail the load.
func (s *Store) fanOut(ctx context.Context, songIDs []string) *Snapshot {
	log := logging.FromContext(ctx)
	snap := &Snapshot{
		Songs:  songs.NewSongs(songs.WithSongsCapacity(len(songIDs))),
		Themes: make(map[string]*songs.ThemeIndex, len(s.themeIDs)),
		Venues: make(map[string]*songs.VenueIndex, len(s.venueIDs)),
	}

	type songResult struct {
		id   string
		song *songs.Song
	}
	type themeResult struct {
		id    string
		index *songs.ThemeIndex
	}
	type venueResult struct {
		id    string
		index *songs.VenueIndex
	}

	var wg sync.WaitGroup
	songCh := make(chan songResult, len(songIDs))
	themeCh := make(chan themeResult, len(s.themeIDs))
	venueCh := make(chan venueResult, len(s.venueIDs))
	albumCh := make(chan []songs.Album, 1)

	for _, id := range songIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			var song songs.Song
			if err := s.fetcher.JSON(ctx, constants.SongsDir+"/"+id+".json", &song); err != nil {
				log.Warn().Err(err).Str("song_id", id).Msg("Dropping song from snapshot")
				return
			}
			if song.SongID == "" {
				song.SongID = id
			}
			songCh <- songResult{id: id, song: &song}
		}(id)
	}

	for _, id := range s.themeIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			var index songs.ThemeIndex
			if err := s.fetcher.JSON(ctx, constants.ThemesDir+"/"+id+".json", &index); err != nil {
				log.Warn().Err(err).Str("theme", id).Msg("Dropping theme from snapshot")
				return
			}
			themeCh <- themeResult{id: id, index: &index}
		}(id)
	}

	for _, id := range s.venueIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			var index songs.VenueIndex
			if err := s.fetcher.JSON(ctx, constants.VenuesDir+"/"+id+".json", &index); err != nil {
				log.Warn().Err(err).Str("venue", id).Msg("Dropping venue from snapshot")
				return
			}
			venueCh <- venueResult{id: id, index: &index}
		}(id)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var albums []songs.Album
		if err := s.fetcher.JSON(ctx, constants.AlbumsPath, &albums); err != nil {
			log.Warn().Err(err).Msg("Dropping albums from snapshot")
			return
		}
		albumCh <- albums
	}()

	wg.Wait()
	close(songCh)
	close(themeCh)
	close(venueCh)
	close(albumCh)

	for r := range songCh {
		_ = snap.Songs.Set(r.id, r.song)
	}
	for r := range themeCh {
		snap.Themes[r.id] = r.index
	}
	for r := range venueCh {
		snap.Venues[r.id] = r.index
	}
	for albums := range albumCh {
		snap.Albums = albums
	}

	return snap
}
