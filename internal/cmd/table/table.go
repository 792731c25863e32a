// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/utc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/egodevrjm/songstore/pkg/songs"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// SongsToTableData converts songs to table format.
func SongsToTableData(list []*songs.Song, showDetails bool) Data {
	headers := []string{"ID", "Title", "Status", "Themes", "Venues"}
	if showDetails {
		headers = append(headers, "Images", "Updated")
	}

	rows := make([][]string, 0, len(list))
	for _, song := range list {
		row := []string{
			song.SongID,
			song.Title,
			string(song.EffectiveStatus()),
			FormatTags(song.Themes),
			FormatTags(song.SuggestedVenues),
		}

		if showDetails {
			row = append(row,
				strconv.Itoa(len(song.Images)),
				FormatTime(song.UpdatedAt),
			)
		}

		rows = append(rows, row)
	}

	alignment := []Align{
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft,
	}
	if showDetails {
		alignment = append(alignment, AlignRight, AlignLeft)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// TagsToTableData converts a tag list with usage counts to table format.
func TagsToTableData(field string, tags []string, counts map[string]int) Data {
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{tag, strconv.Itoa(counts[tag])})
	}
	caser := cases.Title(language.English)
	return Data{
		Headers:         []string{caser.String(strings.ReplaceAll(field, "_", " ")), "Songs"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// FormatTags joins a tag list for a table cell, with a dash for none.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

// FormatTime renders a timestamp for a table cell, with a dash for the zero
// value.
func FormatTime(t utc.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
