package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/internal/cmd/globals"
	"github.com/egodevrjm/songstore/internal/cmd/output"
	"github.com/egodevrjm/songstore/pkg/query"
	"github.com/egodevrjm/songstore/pkg/songs"
)

var listFlags *globals.FilterFlags

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List songs in the catalog",
	Long: `List displays the songs in the catalog, filtered and sorted.

Filters compose: a text search is matched against title, lyrics, and
notes; theme and venue filters pass a song carrying any selected tag;
all active filters must hold at once.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listFlags = globals.AddFilterFlags(listCmd)
	listCmd.Flags().Bool("details", false, "Include image counts and timestamps")
}

func runList(cmd *cobra.Command, _ []string) error {
	c, err := loadedClient(cmd.Context())
	if err != nil {
		return err
	}

	list := query.Apply(c.Store().Songs(), query.Filter{
		Text:   listFlags.Search,
		Themes: listFlags.Themes,
		Venues: listFlags.Venues,
	})

	if listFlags.Status != "" {
		status := songs.Status(listFlags.Status)
		filtered := list[:0]
		for _, song := range list {
			if song.EffectiveStatus() == status {
				filtered = append(filtered, song)
			}
		}
		list = filtered
	}

	list = query.Sort(list, query.SortKey(listFlags.Sort), query.SortOrder(listFlags.Order))
	if listFlags.Limit > 0 && len(list) > listFlags.Limit {
		list = list[:listFlags.Limit]
	}

	if len(list) == 0 {
		fmt.Println("No songs found")
		return nil
	}

	details, _ := cmd.Flags().GetBool("details")
	return output.FormatSongs(list, details, globalFlags)
}
