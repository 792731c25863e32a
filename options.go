package songstore

import (
	"net/http"
	"time"

	"github.com/egodevrjm/songstore/pkg/github"
	"github.com/egodevrjm/songstore/pkg/store"
)

// Option is a function that configures a Client instance.
type Option func(*options)

// options holds the resolved configuration for a Client.
type options struct {
	github             *github.Config
	contentBase        string
	httpClient         *http.Client
	storeOptions       []store.Option
	autoReloadEnabled  bool
	autoReloadInterval time.Duration
}

// defaults returns the baseline options.
func defaults() *options {
	return &options{
		autoReloadInterval: 15 * time.Minute,
	}
}

// apply runs each option over the options struct.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithGitHub configures the authenticated content repository used for saves,
// deletes, and index publishing. Without it the client is read-only.
func WithGitHub(cfg github.Config) Option {
	return func(o *options) {
		o.github = &cfg
	}
}

// WithContentBase sets the static content host the store loads from. When
// unset, the raw-content URL of the configured GitHub repository is used.
func WithContentBase(base string) Option {
	return func(o *options) {
		o.contentBase = base
	}
}

// WithHTTPClient sets the HTTP client used for static content fetches.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithStoreOptions passes options through to the catalog store, e.g. a
// custom song manifest or tag vocabulary.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// WithAutoReload configures whether periodic background reloads are enabled.
func WithAutoReload(enabled bool) Option {
	return func(o *options) {
		o.autoReloadEnabled = enabled
	}
}

// WithAutoReloadInterval configures how often the snapshot is reloaded from
// the content host when auto-reload is on.
func WithAutoReloadInterval(interval time.Duration) Option {
	return func(o *options) {
		o.autoReloadInterval = interval
	}
}
