package store

import (
	"sync"

	"github.com/egodevrjm/songstore/pkg/songs"
)

// Hook function types for snapshot events
type (
	// ReplaceHook is called after a load replaces the snapshot wholesale.
	ReplaceHook func(snapshot *Snapshot)

	// UpsertHook is called after a local optimistic upsert. old is nil when
	// the upsert created the song.
	UpsertHook func(old *songs.Song, updated songs.Song)
)

// hooks manages event callbacks for snapshot changes.
type hooks struct {
	mu        sync.RWMutex
	onReplace []ReplaceHook
	onUpsert  []UpsertHook
}

// OnReplace registers a callback fired after each snapshot replacement.
// Consumers use this instead of polling the store.
func (s *Store) OnReplace(fn ReplaceHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onReplace = append(s.hooks.onReplace, fn)
}

// OnUpsert registers a callback fired after each local upsert.
func (s *Store) OnUpsert(fn UpsertHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onUpsert = append(s.hooks.onUpsert, fn)
}

func (h *hooks) notifyReplace(snapshot *Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReplace {
		fn(snapshot)
	}
}

func (h *hooks) notifyUpsert(old *songs.Song, updated songs.Song) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onUpsert {
		fn(old, updated)
	}
}
