package songstore

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/agentstation/utc"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/github"
	"github.com/egodevrjm/songstore/pkg/logging"
	"github.com/egodevrjm/songstore/pkg/publish"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Saver = (*client)(nil)
	_ Media = (*client)(nil)
)

// Saver persists songs and keeps the derived index files consistent.
type Saver interface {
	// SaveSong writes the song file, republishes the derived indexes,
	// applies the change to the snapshot, and reloads to converge. An empty
	// id derives one from the patch's title.
	SaveSong(ctx context.Context, id string, patch songs.SongPatch) (*songs.Song, *publish.Report, error)

	// DeleteSong removes the song file from the content repository and
	// reloads the snapshot
	DeleteSong(ctx context.Context, id string) error
}

// Media uploads and removes song images in the content repository.
type Media interface {
	// UploadImage commits image bytes under the song's media directory and
	// returns the synced image record to attach to the song
	UploadImage(ctx context.Context, songID, name string, data []byte) (*songs.Image, error)

	// DeleteImage removes a synced image from the content repository. An
	// unsynced image has nothing remote to remove.
	DeleteImage(ctx context.Context, image songs.Image) error
}

// SaveSong follows a fixed ordering: the durable remote write completes
// first, then the derived indexes are republished, then the snapshot is
// patched optimistically, and finally a reload converges with the remote
// state. If the publish partially fails, the song file is already durable,
// so the local upsert is still applied; the returned report says which
// index files were written and the error identifies the failed step.
func (c *client) SaveSong(ctx context.Context, id string, patch songs.SongPatch) (*songs.Song, *publish.Report, error) {
	if c.contents == nil {
		return nil, nil, errors.ErrTokenRequired
	}

	if id == "" {
		if patch.Title == nil || *patch.Title == "" {
			return nil, nil, errors.NewValidationError("title", "", "a title is required to derive a song id")
		}
		id = songs.MakeSongID(*patch.Title)
	}

	now := utc.Now()
	var song songs.Song
	existing, exists := c.store.FindByID(id)
	if exists {
		song = patch.Apply(*existing)
		song.SongID = id
	} else {
		song = patch.Song(id)
		song.CreatedAt = now
	}
	song.UpdatedAt = now

	if err := song.Validate(); err != nil {
		return nil, nil, err
	}

	data, err := json.MarshalIndent(&song, "", "  ")
	if err != nil {
		return nil, nil, errors.WrapParse("json", song.Path(), err)
	}

	verb := "Update"
	if !exists {
		verb = "Add"
	}
	message := fmt.Sprintf("%s song: %s", verb, song.Title)
	if _, err := c.contents.Put(ctx, song.Path(), data, message); err != nil {
		return nil, nil, err
	}

	report, publishErr := c.publisher.Publish(ctx, &song)

	// The song file itself is durable at this point, so the optimistic
	// upsert applies even when the index publish only partially succeeded.
	c.store.Upsert(id, songs.PatchOf(&song))

	if publishErr != nil {
		return &song, report, publishErr
	}

	if err := c.Reload(ctx); err != nil {
		logging.Warn().
			Err(err).
			Str("song_id", id).
			Msg("Reload after save failed; snapshot may lag the remote state")
	}
	return &song, report, nil
}

// DeleteSong removes the song file, drops the song from the snapshot, and
// reloads. The derived index files are left to the next publish of the
// affected tags.
func (c *client) DeleteSong(ctx context.Context, id string) error {
	if c.contents == nil {
		return errors.ErrTokenRequired
	}

	path := constants.SongsDir + "/" + id + ".json"
	file, err := c.contents.Get(ctx, path)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Delete song: %s", id)
	if err := c.contents.Delete(ctx, path, message, file.SHA); err != nil {
		return err
	}

	// The remote file is gone, so the snapshot can drop the song without
	// waiting for the reload.
	c.store.Delete(id)

	if err := c.Reload(ctx); err != nil {
		logging.Warn().
			Err(err).
			Str("song_id", id).
			Msg("Reload after delete failed; snapshot may lag the remote state")
	}
	return nil
}

// UploadImage commits image bytes under images/songs/<id>/ and returns the
// synced image record.
func (c *client) UploadImage(ctx context.Context, songID, name string, data []byte) (*songs.Image, error) {
	if c.contents == nil {
		return nil, errors.ErrTokenRequired
	}
	if songID == "" {
		return nil, errors.NewValidationError("songID", songID, "a song id is required")
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError("data", nil, "image content is empty")
	}

	path := github.MediaPath(songID, name, time.Now())
	message := fmt.Sprintf("Upload image for %s", songID)
	result, err := c.contents.Put(ctx, path, data, message, github.WithoutSHADiscovery())
	if err != nil {
		return nil, err
	}

	now := utc.Now()
	return &songs.Image{
		ID:       filepath.Base(path),
		Name:     name,
		Filename: path,
		URL:      result.DownloadURL,
		HTMLURL:  result.HTMLURL,
		SHA:      result.SHA,
		Size:     int64(len(data)),
		Type:     mime.TypeByExtension(filepath.Ext(name)),
		Uploaded: &now,
	}, nil
}

// DeleteImage removes a synced image from the content repository. Callers
// drop the image from the song only after this succeeds, so a failed remote
// delete never orphans the file.
func (c *client) DeleteImage(ctx context.Context, image songs.Image) error {
	if c.contents == nil {
		return errors.ErrTokenRequired
	}
	if !image.Synced() {
		return nil
	}
	if image.Filename == "" {
		return errors.NewValidationError("filename", "", "synced image has no remote path")
	}

	message := fmt.Sprintf("Delete image %s", image.Name)
	return c.contents.Delete(ctx, image.Filename, message, image.SHA)
}
