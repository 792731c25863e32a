// Package songstore is the entry point for the songwriter catalog system.
// It ties together the in-memory catalog store, the GitHub-backed content
// client, and the denormalized index publisher behind one client interface.
//
// The store loads the published catalog from a static content host, keeps a
// snapshot in memory, and exposes lookup and filter accessors. Writes go the
// other way: a save validates the song, commits it to the content repository,
// republishes the derived index files, applies the change to the snapshot
// optimistically, and finally reloads to converge with the remote state.
//
// Example usage:
//
//	ss, err := songstore.New(
//	    songstore.WithGitHub(github.Config{
//	        Token: os.Getenv("GITHUB_TOKEN"),
//	        Owner: "egodevrjm",
//	        Repo:  "awsongstore",
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ss.AutoReloadOff()
//
//	if err := ss.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	title := "Neon Halo"
//	song, report, err := ss.SaveSong(ctx, "", songs.SongPatch{Title: &title})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("saved %s, wrote %d files\n", song.SongID, len(report.Updated))
package songstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/egodevrjm/songstore/internal/fetch"
	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/github"
	"github.com/egodevrjm/songstore/pkg/publish"
	"github.com/egodevrjm/songstore/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client is the high-level surface of the song store.
type Client interface {

	// Catalog provides read access to the in-memory snapshot
	Catalog

	// Components exposes the underlying building blocks for callers that
	// need them directly
	Components

	// Saver handles song persistence and the derived-index publish
	Saver

	// Media handles song image upload and removal
	Media

	// AutoReloader provides access to periodic background reloads
	AutoReloader

	// Hooks provides access to event callback registration
	Hooks
}

// Catalog is the read surface over the current snapshot.
type Catalog interface {
	// Store returns the catalog store holding the current snapshot
	Store() *store.Store

	// Load assembles a fresh snapshot from the content host
	Load(ctx context.Context) error

	// Reload is an alias for Load, for callers converging after a write
	Reload(ctx context.Context) error
}

// Components exposes the underlying building blocks. Contents and Publisher
// are nil when the client was built without GitHub credentials.
type Components interface {
	// Contents returns the authenticated content client
	Contents() *github.Client

	// Publisher returns the derived-index publisher
	Publisher() *publish.Publisher
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// store holds the in-memory snapshot
	store *store.Store

	// contents is the authenticated write path; nil in read-only mode
	contents *github.Client

	// publisher maintains the derived index files; nil in read-only mode
	publisher *publish.Publisher

	// auto reload state
	mu           sync.Mutex
	reloadTicker *time.Ticker
	reloadCancel context.CancelFunc
	stopCh       chan struct{}
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		options: defaults().apply(opts...),
		stopCh:  make(chan struct{}),
	}

	if c.options.github != nil {
		contents, err := github.New(*c.options.github)
		if err != nil {
			return nil, err
		}
		c.contents = contents
		c.publisher = publish.New(contents)
	}

	base := c.options.contentBase
	if base == "" {
		if c.contents == nil {
			return nil, errors.NewValidationError("contentBase", "",
				"a content host base URL or a GitHub configuration is required")
		}
		base = rawContentBase(*c.options.github)
	}
	fetcher := fetch.New(base, c.options.httpClient)
	c.store = store.New(fetcher, c.options.storeOptions...)

	if c.options.autoReloadEnabled {
		if err := c.AutoReloadOn(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// rawContentBase derives the public raw-content URL for the configured
// repository, used when no explicit content host is given.
func rawContentBase(cfg github.Config) string {
	branch := cfg.Branch
	if branch == "" {
		branch = constants.DefaultBranch
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s",
		cfg.Owner, cfg.Repo, strings.TrimPrefix(branch, "/"))
}

// Store returns the catalog store holding the current snapshot.
func (c *client) Store() *store.Store {
	return c.store
}

// Contents returns the authenticated content client, or nil when the client
// was built without GitHub credentials.
func (c *client) Contents() *github.Client {
	return c.contents
}

// Publisher returns the derived-index publisher, or nil in read-only mode.
func (c *client) Publisher() *publish.Publisher {
	return c.publisher
}

// Load assembles a fresh snapshot from the content host.
func (c *client) Load(ctx context.Context) error {
	return c.store.Load(ctx)
}

// Reload is an alias for Load. Callers use it after a save to converge the
// snapshot with the remote state.
func (c *client) Reload(ctx context.Context) error {
	return c.store.Reload(ctx)
}
