package songstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/github"
	"github.com/egodevrjm/songstore/pkg/songs"
	"github.com/egodevrjm/songstore/pkg/store"
)

// fakeRepo is an in-memory file store exposed twice: once with the contents
// API shape for writes, once as a plain static host for reads.
type fakeRepo struct {
	mu    sync.Mutex
	files map[string][]byte
	shas  map[string]string
	serial int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: map[string][]byte{}, shas: map[string]string{}}
}

func (r *fakeRepo) nextSHA() string {
	r.serial++
	return fmt.Sprintf("sha-%d", r.serial)
}

func (r *fakeRepo) contentsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimPrefix(req.URL.Path, "/repos/egodevrjm/awsongstore/contents/")

		r.mu.Lock()
		defer r.mu.Unlock()

		switch req.Method {
		case http.MethodGet:
			data, ok := r.files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": base64.StdEncoding.EncodeToString(data),
				"sha":     r.shas[path],
			})
		case http.MethodPut:
			var body struct {
				Content string  `json:"content"`
				SHA     *string `json:"sha"`
			}
			_ = json.NewDecoder(req.Body).Decode(&body)
			if body.SHA != nil && *body.SHA != r.shas[path] {
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "is at a different sha"})
				return
			}
			data, _ := base64.StdEncoding.DecodeString(body.Content)
			created := r.shas[path] == ""
			r.files[path] = data
			r.shas[path] = r.nextSHA()
			if created {
				w.WriteHeader(http.StatusCreated)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]string{"sha": r.shas[path]},
			})
		case http.MethodDelete:
			if _, ok := r.files[path]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(r.files, path)
			delete(r.shas, path)
			_ = json.NewEncoder(w).Encode(map[string]any{})
		}
	})
}

func (r *fakeRepo) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		data, ok := r.files[strings.TrimPrefix(req.URL.Path, "/")]
		r.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	})
}

func newTestClient(t *testing.T, repo *fakeRepo) Client {
	t.Helper()
	api := httptest.NewServer(repo.contentsHandler())
	t.Cleanup(api.Close)
	static := httptest.NewServer(repo.staticHandler())
	t.Cleanup(static.Close)

	c, err := New(
		WithGitHub(github.Config{
			Token:   "test-token",
			Owner:   "egodevrjm",
			Repo:    "awsongstore",
			APIBase: api.URL,
		}),
		WithContentBase(static.URL),
		WithStoreOptions(
			store.WithThemes([]string{"bar_setting"}),
			store.WithVenues(nil),
		),
	)
	require.NoError(t, err)
	return c
}

func TestNewRequiresSomeContentSource(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestSaveRequiresCredentials(t *testing.T) {
	static := httptest.NewServer(newFakeRepo().staticHandler())
	t.Cleanup(static.Close)

	c, err := New(WithContentBase(static.URL))
	require.NoError(t, err)

	title := "No Token"
	_, _, err = c.SaveSong(context.Background(), "", songs.SongPatch{Title: &title})
	assert.ErrorIs(t, err, errors.ErrTokenRequired)
}

func TestSaveSongEndToEnd(t *testing.T) {
	repo := newFakeRepo()
	c := newTestClient(t, repo)

	title := "Neon Halo"
	lyrics := "under the neon halo she waits"
	song, report, err := c.SaveSong(context.Background(), "", songs.SongPatch{
		Title:  &title,
		Lyrics: &lyrics,
		Themes: &[]string{"bar_setting"},
	})
	require.NoError(t, err)
	require.Nil(t, report.Failed)

	// Id derived from the title.
	assert.Equal(t, "neon_halo", song.SongID)
	assert.False(t, song.CreatedAt.IsZero())

	// The song file and every derived index exist in the repository.
	assert.Contains(t, repo.files, "songs/neon_halo.json")
	assert.Contains(t, repo.files, "catalog.json")
	assert.Contains(t, repo.files, "search.json")
	assert.Contains(t, repo.files, "themes/bar_setting.json")
	assert.Contains(t, repo.files, "status/private.json")

	// The snapshot reflects the save, and reload converged it with the
	// remote state the static host now serves.
	got, ok := c.Store().FindByID("neon_halo")
	require.True(t, ok)
	assert.Equal(t, "Neon Halo", got.Title)
	assert.Equal(t, lyrics, got.Lyrics)
}

func TestSaveSongUpdatesExisting(t *testing.T) {
	repo := newFakeRepo()
	c := newTestClient(t, repo)

	title := "First Cut"
	song, _, err := c.SaveSong(context.Background(), "", songs.SongPatch{Title: &title})
	require.NoError(t, err)
	created := song.CreatedAt

	notes := "bridge needs work"
	updated, _, err := c.SaveSong(context.Background(), song.SongID, songs.SongPatch{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "First Cut", updated.Title)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created) || updated.UpdatedAt.Equal(created))
}

func TestDeleteSongRemovesFile(t *testing.T) {
	repo := newFakeRepo()
	c := newTestClient(t, repo)

	title := "Short Lived"
	song, _, err := c.SaveSong(context.Background(), "", songs.SongPatch{Title: &title})
	require.NoError(t, err)
	require.Contains(t, repo.files, song.Path())

	require.NoError(t, c.DeleteSong(context.Background(), song.SongID))
	assert.NotContains(t, repo.files, song.Path())
}

func TestImageLifecycle(t *testing.T) {
	repo := newFakeRepo()
	c := newTestClient(t, repo)

	img, err := c.UploadImage(context.Background(), "neon_halo", "Cover Art.PNG", []byte{0x89, 0x50})
	require.NoError(t, err)

	assert.True(t, img.Synced())
	assert.True(t, strings.HasPrefix(img.Filename, "images/songs/neon_halo/"))
	assert.Contains(t, img.Filename, "cover_art.png")
	assert.Contains(t, repo.files, img.Filename)

	require.NoError(t, c.DeleteImage(context.Background(), *img))
	assert.NotContains(t, repo.files, img.Filename)

	// An unsynced image has nothing remote to remove.
	assert.NoError(t, c.DeleteImage(context.Background(), songs.Image{ID: "local", URL: "data:image/png;base64,AA=="}))
}

func TestSaveSongValidatesBeforeWriting(t *testing.T) {
	repo := newFakeRepo()
	c := newTestClient(t, repo)

	_, _, err := c.SaveSong(context.Background(), "", songs.SongPatch{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, repo.files)
}
