package songstore

import (
	"github.com/egodevrjm/songstore/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks provides registration for snapshot change callbacks.
type Hooks interface {
	// OnSnapshotReplaced registers a callback for when a load replaces the
	// snapshot wholesale
	OnSnapshotReplaced(store.ReplaceHook)

	// OnSongUpserted registers a callback for when a song is created or
	// patched in place; old is nil on create
	OnSongUpserted(store.UpsertHook)
}

// OnSnapshotReplaced registers a callback for snapshot replacement.
func (c *client) OnSnapshotReplaced(fn store.ReplaceHook) {
	c.store.OnReplace(fn)
}

// OnSongUpserted registers a callback for song upserts.
func (c *client) OnSongUpserted(fn store.UpsertHook) {
	c.store.OnUpsert(fn)
}
