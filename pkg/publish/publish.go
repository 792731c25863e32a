// Package publish keeps the denormalized index files in the remote store
// consistent with one song's current state. A publish is an explicit step
// list: one step per derived file (catalog, search, one per theme, one per
// venue, one status file), executed in order with a completion report so a
// caller can retry only what failed.
//
// There is no cross-file transaction. A step that fails aborts the remaining
// unattempted steps but never rolls back files already written; the report
// records exactly which paths were updated.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/github"
	"github.com/egodevrjm/songstore/pkg/logging"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// Contents is the remote file surface the publisher writes through. It is
// satisfied by *github.Client.
type Contents interface {
	Get(ctx context.Context, path string) (*github.File, error)
	Put(ctx context.Context, path string, content []byte, message string, opts ...github.PutOption) (*github.WriteResult, error)
}

// Family names one group of derived files.
type Family string

const (
	FamilyCatalog Family = "catalog"
	FamilySearch  Family = "search"
	FamilyTheme   Family = "theme"
	FamilyVenue   Family = "venue"
	FamilyStatus  Family = "status"
)

// Step is one derived file to bring up to date.
type Step struct {
	Family Family
	Path   string
}

// StepFailure records the step that aborted a publish.
type StepFailure struct {
	Family Family
	Path   string
	Err    error
}

func (f *StepFailure) Error() string {
	return fmt.Sprintf("publish %s step failed for %s: %v", f.Family, f.Path, f.Err)
}

func (f *StepFailure) Unwrap() error {
	return f.Err
}

// Report is the completion log of one publish: which paths were written,
// which were skipped as already current, and the step that failed, if any.
// A report with a nil Failed field is a full success.
type Report struct {
	SongID  string
	Updated []string
	Skipped []string
	Failed  *StepFailure
}

// Remaining returns the paths of steps that were not attempted or failed,
// suitable for a retry via WithSkipPaths on the paths already updated.
func (r *Report) Remaining(song *songs.Song) []string {
	done := make(map[string]struct{}, len(r.Updated)+len(r.Skipped))
	for _, p := range r.Updated {
		done[p] = struct{}{}
	}
	for _, p := range r.Skipped {
		done[p] = struct{}{}
	}
	var out []string
	for _, step := range Steps(song) {
		if _, ok := done[step.Path]; !ok {
			out = append(out, step.Path)
		}
	}
	return out
}

// Option configures a single Publish call.
type Option func(*options)

type options struct {
	skip map[string]struct{}
}

// WithSkipPaths marks paths as already written by a prior partially-failed
// publish of the same song state, so a retry touches only the remainder.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		if o.skip == nil {
			o.skip = make(map[string]struct{}, len(paths))
		}
		for _, p := range paths {
			o.skip[p] = struct{}{}
		}
	}
}

// Publisher writes the derived index families for songs.
type Publisher struct {
	contents Contents
}

// New returns a publisher writing through the given contents client.
func New(contents Contents) *Publisher {
	return &Publisher{contents: contents}
}

// Steps returns the derived files a publish of this song touches, in the
// order they are attempted. Tag families contribute one step per tag the
// song carries; a song with no venues yields no venue steps.
func Steps(song *songs.Song) []Step {
	steps := []Step{
		{Family: FamilyCatalog, Path: constants.CatalogPath},
		{Family: FamilySearch, Path: constants.SearchPath},
	}
	for _, theme := range song.Themes {
		steps = append(steps, Step{Family: FamilyTheme, Path: constants.ThemesDir + "/" + theme + ".json"})
	}
	for _, venue := range song.SuggestedVenues {
		steps = append(steps, Step{Family: FamilyVenue, Path: constants.VenuesDir + "/" + venue + ".json"})
	}
	steps = append(steps, Step{
		Family: FamilyStatus,
		Path:   constants.StatusDir + "/" + string(song.EffectiveStatus()) + ".json",
	})
	return steps
}

// Publish brings every derived file for the song up to date. The returned
// report is non-nil even on failure and records which paths were written
// before the failing step; the error, when non-nil, is the *StepFailure
// also carried in the report.
func (p *Publisher) Publish(ctx context.Context, song *songs.Song, opts ...Option) (*Report, error) {
	if song == nil {
		return nil, errors.NewValidationError("song", nil, "song is required")
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer cancel()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{SongID: song.SongID}
	for _, step := range Steps(song) {
		if _, skip := o.skip[step.Path]; skip {
			report.Skipped = append(report.Skipped, step.Path)
			continue
		}
		if err := p.run(ctx, step, song); err != nil {
			report.Failed = &StepFailure{Family: step.Family, Path: step.Path, Err: err}
			logging.Error().
				Err(err).
				Str("song_id", song.SongID).
				Str("family", string(step.Family)).
				Str("path", step.Path).
				Strs("updated", report.Updated).
				Msg("Publish aborted; earlier writes stand")
			return report, report.Failed
		}
		report.Updated = append(report.Updated, step.Path)
	}

	logging.Debug().
		Str("song_id", song.SongID).
		Int("files", len(report.Updated)).
		Msg("Published derived indexes")
	return report, nil
}

func (p *Publisher) run(ctx context.Context, step Step, song *songs.Song) error {
	switch step.Family {
	case FamilyCatalog:
		return p.publishCatalog(ctx, song)
	case FamilySearch:
		return p.publishSearch(ctx, song)
	case FamilyTheme:
		return p.publishTheme(ctx, step.Path, song)
	case FamilyVenue:
		return p.publishVenue(ctx, step.Path, song)
	case FamilyStatus:
		return p.publishStatus(ctx, step.Path, song)
	default:
		return errors.NewValidationError("family", string(step.Family), "unknown publish family")
	}
}

func (p *Publisher) publishCatalog(ctx context.Context, song *songs.Song) error {
	var entries []songs.CatalogEntry
	sha, err := p.fetchInto(ctx, constants.CatalogPath, &entries)
	if err != nil {
		return err
	}

	entries = upsertByID(entries, songs.NewCatalogEntry(song),
		func(e songs.CatalogEntry) string { return e.SongID })
	sortByTitle(entries, func(e songs.CatalogEntry) string { return e.Title })

	message := fmt.Sprintf("Update catalog: add %s", song.Title)
	return p.putJSON(ctx, constants.CatalogPath, entries, message, sha)
}

func (p *Publisher) publishSearch(ctx context.Context, song *songs.Song) error {
	var entries []songs.SearchEntry
	sha, err := p.fetchInto(ctx, constants.SearchPath, &entries)
	if err != nil {
		return err
	}

	entries = upsertByID(entries, songs.NewSearchEntry(song),
		func(e songs.SearchEntry) string { return e.SongID })
	sortByTitle(entries, func(e songs.SearchEntry) string { return e.Title })

	message := fmt.Sprintf("Update search index: add %s", song.Title)
	return p.putJSON(ctx, constants.SearchPath, entries, message, sha)
}

func (p *Publisher) publishTheme(ctx context.Context, path string, song *songs.Song) error {
	theme := tagFromPath(path)
	index := songs.NewThemeIndex(theme)
	sha, err := p.fetchInto(ctx, path, index)
	if err != nil {
		return err
	}
	index.Theme = theme
	index.Upsert(song.SongID, songs.NewThemeEntry(song))

	message := fmt.Sprintf("Update theme index %s: add %s", theme, song.Title)
	return p.putJSON(ctx, path, index, message, sha)
}

func (p *Publisher) publishVenue(ctx context.Context, path string, song *songs.Song) error {
	venue := tagFromPath(path)
	index := songs.NewVenueIndex(venue)
	sha, err := p.fetchInto(ctx, path, index)
	if err != nil {
		return err
	}
	index.VenueType = venue
	index.Upsert(song.SongID, songs.NewVenueEntry(song))

	message := fmt.Sprintf("Update venue index %s: add %s", venue, song.Title)
	return p.putJSON(ctx, path, index, message, sha)
}

func (p *Publisher) publishStatus(ctx context.Context, path string, song *songs.Song) error {
	status := songs.Status(tagFromPath(path))
	index := songs.NewStatusIndex(status)
	sha, err := p.fetchInto(ctx, path, index)
	if err != nil {
		return err
	}
	index.Status = status
	index.Upsert(song.SongID, songs.NewStatusEntry(song))

	message := fmt.Sprintf("Update status index %s: add %s", status, song.Title)
	return p.putJSON(ctx, path, index, message, sha)
}

// fetchInto reads the current derived file into v and returns its digest.
// A missing file is the empty default state, not a failure; its digest is
// empty.
func (p *Publisher) fetchInto(ctx context.Context, path string, v any) (string, error) {
	file, err := p.contents.Get(ctx, path)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	if len(file.Content) == 0 {
		return file.SHA, nil
	}
	if err := json.Unmarshal(file.Content, v); err != nil {
		return "", errors.WrapParse("json", path, err)
	}
	return file.SHA, nil
}

// putJSON writes the derived file with the digest fetchInto observed, so the
// client skips its own discovery read and a write that races another editor
// fails with a conflict instead of clobbering.
func (p *Publisher) putJSON(ctx context.Context, path string, v any, message, sha string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	opt := github.WithoutSHADiscovery()
	if sha != "" {
		opt = github.WithSHA(sha)
	}
	_, err = p.contents.Put(ctx, path, data, message, opt)
	return err
}

func upsertByID[T any](entries []T, entry T, id func(T) string) []T {
	key := id(entry)
	for i := range entries {
		if id(entries[i]) == key {
			entries[i] = entry
			return entries
		}
	}
	return append(entries, entry)
}

func sortByTitle[T any](entries []T, title func(T) string) {
	sorter := songs.NewTitleSorter()
	sort.SliceStable(entries, func(i, j int) bool {
		return sorter.Less(title(entries[i]), title(entries[j]))
	})
}

func tagFromPath(p string) string {
	return strings.TrimSuffix(path.Base(p), ".json")
}
