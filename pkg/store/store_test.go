package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/logging"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// fakeFetcher serves documents from memory, with per-path error injection
// and the ability to block a path's first fetch for supersession tests.
type fakeFetcher struct {
	mu      sync.Mutex
	docs    map[string]any
	errs    map[string]error
	block   map[string]chan struct{} // first fetch of path waits on this
	started map[string]chan struct{} // closed when path's first fetch begins
	blocked map[string]bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		docs:    map[string]any{},
		errs:    map[string]error{},
		block:   map[string]chan struct{}{},
		started: map[string]chan struct{}{},
		blocked: map[string]bool{},
	}
}

func (f *fakeFetcher) set(path string, doc any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[path] = doc
}

func (f *fakeFetcher) blockFirst(path string) (release func(), started <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	begun := make(chan struct{})
	f.block[path] = gate
	f.started[path] = begun
	return func() { close(gate) }, begun
}

func (f *fakeFetcher) JSON(_ context.Context, path string, v any) error {
	f.mu.Lock()
	gate, gated := f.block[path]
	if gated && !f.blocked[path] {
		f.blocked[path] = true
		close(f.started[path])
		f.mu.Unlock()
		<-gate
		f.mu.Lock()
	}
	err, hasErr := f.errs[path]
	doc, ok := f.docs[path]
	f.mu.Unlock()

	if hasErr {
		return err
	}
	if !ok {
		return errors.NewNotFoundError("file", path)
	}
	data, merr := json.Marshal(doc)
	if merr != nil {
		return merr
	}
	return json.Unmarshal(data, v)
}

func seedSong(f *fakeFetcher, id, title string, themes, venues []string) {
	f.set("songs/"+id+".json", songs.Song{
		SongID:          id,
		Title:           title,
		Status:          songs.StatusPublic,
		Themes:          themes,
		SuggestedVenues: venues,
	})
}

func testStore(f *fakeFetcher) *Store {
	return New(f,
		WithThemes([]string{"bar_setting", "family"}),
		WithVenues([]string{"dive_bar"}),
	)
}

func TestLoadDropsMissingSongWithoutError(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{
		{SongID: "one"}, {SongID: "two"}, {SongID: "three"},
	})
	seedSong(f, "one", "One", nil, nil)
	seedSong(f, "two", "Two", nil, nil)
	// "three" is absent: a 404 drops the entity, not the load.

	s := testStore(f)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 2, len(s.Songs()))
	assert.NoError(t, s.Err())
	assert.False(t, s.Loading())

	_, ok := s.FindByID("three")
	assert.False(t, ok)
}

func TestLoadLogsDroppedSong(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}, {SongID: "three"}})
	seedSong(f, "one", "One", nil, nil)

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	s := testStore(f)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 1, len(s.Songs()))

	// The drop is silent toward the caller but visible in the log.
	tl.AssertContains(t, "Dropping song from snapshot")
	tl.AssertContains(t, "three")
}

func TestLoadFallsBackToBuiltinManifest(t *testing.T) {
	f := newFakeFetcher()
	// No catalog.json at all.
	seedSong(f, "red_dirt_road", "Red Dirt Road", nil, nil)

	s := New(f,
		WithSongManifest([]string{"red_dirt_road", "missing_song"}),
		WithThemes(nil), WithVenues(nil),
	)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 1, len(s.Songs()))
	_, ok := s.FindByID("red_dirt_road")
	assert.True(t, ok)
}

func TestLoadHardErrorOnManifestFailure(t *testing.T) {
	f := newFakeFetcher()
	f.errs["catalog.json"] = &errors.RemoteError{Operation: "get", Path: "catalog.json", Message: "boom"}

	s := testStore(f)
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Error(t, s.Err())
	assert.False(t, s.Loading())
}

func TestLoadAggregatesThemesVenuesAlbums(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}})
	seedSong(f, "one", "One", []string{"bar_setting"}, []string{"dive_bar"})
	f.set("themes/bar_setting.json", songs.ThemeIndex{
		Theme: "bar_setting", SongCount: 1,
		Songs: map[string]songs.IndexEntry{"one": {Title: "One"}},
	})
	// themes/family.json is absent and silently dropped.
	f.set("venues/dive_bar.json", songs.VenueIndex{VenueType: "dive_bar", SongCount: 1})
	f.set("albums.json", []songs.Album{{ID: "a1", Title: "First Light", SongIDs: []string{"one"}}})

	s := testStore(f)
	require.NoError(t, s.Load(context.Background()))

	themes := s.Themes()
	require.Contains(t, themes, "bar_setting")
	assert.NotContains(t, themes, "family")
	assert.Equal(t, 1, themes["bar_setting"].SongCount)

	assert.Contains(t, s.Venues(), "dive_bar")

	albums := s.Albums()
	require.Len(t, albums, 1)
	assert.Equal(t, "First Light", albums[0].Title)
}

func TestUpsertCreatesFromPatch(t *testing.T) {
	s := testStore(newFakeFetcher())

	title := "Canyons Cry"
	lyrics := "down where the canyon cries"
	s.Upsert("canyons_cry", songs.SongPatch{Title: &title, Lyrics: &lyrics})

	got, ok := s.FindByID("canyons_cry")
	require.True(t, ok)
	want := songs.SongPatch{Title: &title, Lyrics: &lyrics}.Song("canyons_cry")
	assert.Equal(t, want, *got)
}

func TestUpsertPatchesExistingInPlace(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}})
	seedSong(f, "one", "One", []string{"family"}, nil)

	s := testStore(f)
	require.NoError(t, s.Load(context.Background()))

	before, ok := s.FindByID("one")
	require.True(t, ok)

	lyrics := "new verse"
	s.Upsert("one", songs.SongPatch{Lyrics: &lyrics})

	after, ok := s.FindByID("one")
	require.True(t, ok)
	assert.Equal(t, "new verse", after.Lyrics)
	// Every other field survives the patch.
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Themes, after.Themes)
	assert.Equal(t, before.Status, after.Status)
}

func TestDeleteRemovesFromSnapshot(t *testing.T) {
	s := testStore(newFakeFetcher())
	title := "Gone Soon"
	s.Upsert("gone_soon", songs.SongPatch{Title: &title})

	require.True(t, s.Delete("gone_soon"))
	_, ok := s.FindByID("gone_soon")
	assert.False(t, ok)

	assert.False(t, s.Delete("gone_soon"), "second delete finds nothing")
}

func TestFindByTagMembership(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}, {SongID: "two"}})
	seedSong(f, "one", "One", []string{"bar_setting"}, []string{"dive_bar"})
	seedSong(f, "two", "Two", []string{"family"}, nil)

	s := testStore(f)
	require.NoError(t, s.Load(context.Background()))

	byTheme := s.FindByTheme("bar_setting")
	require.Len(t, byTheme, 1)
	assert.Equal(t, "one", byTheme[0].SongID)

	byVenue := s.FindByVenue("dive_bar")
	require.Len(t, byVenue, 1)
	assert.Equal(t, "one", byVenue[0].SongID)

	assert.Empty(t, s.FindByTheme("nostalgia"))
}

func TestHooksFire(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}})
	seedSong(f, "one", "One", nil, nil)

	s := testStore(f)

	var replaced *Snapshot
	s.OnReplace(func(snap *Snapshot) { replaced = snap })

	var upsertOld *songs.Song
	var upsertNew songs.Song
	s.OnUpsert(func(old *songs.Song, updated songs.Song) {
		upsertOld = old
		upsertNew = updated
	})

	require.NoError(t, s.Load(context.Background()))
	require.NotNil(t, replaced)
	assert.Equal(t, 1, replaced.Songs.Len())

	title := "New Song"
	s.Upsert("new_song", songs.SongPatch{Title: &title})
	assert.Nil(t, upsertOld, "creating upsert reports no prior value")
	assert.Equal(t, "New Song", upsertNew.Title)

	lyrics := "la la"
	s.Upsert("new_song", songs.SongPatch{Lyrics: &lyrics})
	require.NotNil(t, upsertOld)
	assert.Equal(t, "New Song", upsertOld.Title)
	assert.Equal(t, "la la", upsertNew.Lyrics)
}

func TestLaterLoadSupersedesEarlier(t *testing.T) {
	f := newFakeFetcher()
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}})
	seedSong(f, "one", "One", nil, nil)

	release, started := f.blockFirst("songs/one.json")

	s := New(f, WithThemes(nil), WithVenues(nil))

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-started

	// A second catalog state appears while the first load hangs.
	f.set("catalog.json", []songs.CatalogEntry{{SongID: "one"}, {SongID: "two"}})
	seedSong(f, "two", "Two", nil, nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 2, len(s.Songs()))

	// The stale first load must discard its result, not clobber the newer
	// snapshot.
	release()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first load did not finish")
	}
	assert.Equal(t, 2, len(s.Songs()))
}

func TestFindByIDReturnsCopy(t *testing.T) {
	s := testStore(newFakeFetcher())
	title := "One"
	s.Upsert("one", songs.SongPatch{Title: &title, Themes: &[]string{"family"}})

	got, ok := s.FindByID("one")
	require.True(t, ok)
	got.Themes[0] = "mutated"

	again, _ := s.FindByID("one")
	assert.Equal(t, "family", again.Themes[0])
}
