package output

import (
	"os"

	"github.com/egodevrjm/songstore/internal/cmd/globals"
	"github.com/egodevrjm/songstore/internal/cmd/table"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// FormatSongs handles the common pattern of formatting songs for output.
func FormatSongs(list []*songs.Song, showDetails bool, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	var outputData any
	switch Format(globalFlags.Output) {
	case FormatTable, FormatWide, "":
		outputData = table.SongsToTableData(list, showDetails || Format(globalFlags.Output) == FormatWide)
	default:
		outputData = list
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatTags formats a distinct-tag listing with usage counts.
func FormatTags(field string, tags []string, counts map[string]int, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	var outputData any
	switch Format(globalFlags.Output) {
	case FormatTable, FormatWide, "":
		outputData = table.TagsToTableData(field, tags, counts)
	default:
		outputData = tags
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny handles the common pattern of formatting any data type for
// output. Useful for commands with custom data structures.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}
