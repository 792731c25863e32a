// Package query provides pure, stateless derivations over song sequences:
// filtering, sorting, and distinct-tag extraction. Nothing here touches the
// store or the remote source; callers pass in the slice they got from a
// snapshot accessor and receive a new slice back.
package query

import (
	"sort"
	"strings"

	"github.com/egodevrjm/songstore/pkg/songs"
)

// Filter describes the active filter criteria. Zero-valued fields are
// inactive: an empty Filter passes every song through unchanged.
type Filter struct {
	// Text matches case-insensitively as a substring of the title, lyrics,
	// or notes. Any hit passes.
	Text string

	// Themes and Venues are OR within each field and AND across fields: a
	// song passes when it carries at least one selected theme (or no theme
	// filter is active) and at least one selected venue (or no venue filter
	// is active).
	Themes []string
	Venues []string
}

// SortKey selects the comparison used by Sort.
type SortKey string

const (
	SortByTitle      SortKey = "title"
	SortByThemeCount SortKey = "theme_count"
	SortByVenueCount SortKey = "venue_count"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// TagField selects which tag list DistinctTags collects.
type TagField string

const (
	ThemeTags TagField = "themes"
	VenueTags TagField = "suggested_venues"
)

// Apply returns the songs matching the filter, preserving input order. The
// empty filter is the identity.
func Apply(in []*songs.Song, f Filter) []*songs.Song {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]*songs.Song, 0, len(in))
	for _, song := range in {
		if song == nil {
			continue
		}
		if text != "" && !matchesText(song, text) {
			continue
		}
		if len(f.Themes) > 0 && !hasAny(song.Themes, f.Themes) {
			continue
		}
		if len(f.Venues) > 0 && !hasAny(song.SuggestedVenues, f.Venues) {
			continue
		}
		out = append(out, song)
	}
	return out
}

func matchesText(song *songs.Song, needle string) bool {
	return strings.Contains(strings.ToLower(song.Title), needle) ||
		strings.Contains(strings.ToLower(song.Lyrics), needle) ||
		strings.Contains(strings.ToLower(song.Notes), needle)
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Sort returns a new slice ordered by the given key. Title comparison is
// locale-aware; the count keys compare numerically. Ties keep the input
// order regardless of direction, so a descending sort is the exact reverse
// of the ascending comparator, not a reversed slice.
func Sort(in []*songs.Song, key SortKey, order SortOrder) []*songs.Song {
	out := make([]*songs.Song, len(in))
	copy(out, in)

	var cmp func(a, b *songs.Song) int
	switch key {
	case SortByThemeCount:
		cmp = func(a, b *songs.Song) int { return len(a.Themes) - len(b.Themes) }
	case SortByVenueCount:
		cmp = func(a, b *songs.Song) int { return len(a.SuggestedVenues) - len(b.SuggestedVenues) }
	default:
		titles := songs.NewTitleSorter()
		cmp = func(a, b *songs.Song) int { return titles.Compare(a.Title, b.Title) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// DistinctTags returns the union of the chosen tag list across all input
// songs, deduplicated and alphabetically sorted.
func DistinctTags(in []*songs.Song, field TagField) []string {
	seen := make(map[string]struct{})
	for _, song := range in {
		if song == nil {
			continue
		}
		tags := song.Themes
		if field == VenueTags {
			tags = song.SuggestedVenues
		}
		for _, tag := range tags {
			if tag == "" {
				continue
			}
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
