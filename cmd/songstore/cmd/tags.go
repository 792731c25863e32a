package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/internal/cmd/output"
	"github.com/egodevrjm/songstore/pkg/query"
)

// themesCmd represents the themes command
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the distinct theme tags in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTags(cmd, query.ThemeTags)
	},
}

// venuesCmd represents the venues command
var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "List the distinct suggested-venue tags in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTags(cmd, query.VenueTags)
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(venuesCmd)
}

func runTags(cmd *cobra.Command, field query.TagField) error {
	c, err := loadedClient(cmd.Context())
	if err != nil {
		return err
	}

	list := c.Store().Songs()
	tags := query.DistinctTags(list, field)

	counts := make(map[string]int, len(tags))
	for _, song := range list {
		values := song.Themes
		if field == query.VenueTags {
			values = song.SuggestedVenues
		}
		for _, tag := range values {
			counts[tag]++
		}
	}

	return output.FormatTags(string(field), tags, counts, globalFlags)
}
