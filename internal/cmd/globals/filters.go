package globals

import "github.com/spf13/cobra"

// FilterFlags holds flags for song listing and search operations.
type FilterFlags struct {
	Search string
	Themes []string
	Venues []string
	Status string
	Sort   string
	Order  string
	Limit  int
}

// AddFilterFlags adds song filter flags to a command.
func AddFilterFlags(cmd *cobra.Command) *FilterFlags {
	flags := &FilterFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Match against title, lyrics, or notes")
	cmd.Flags().StringSliceVar(&flags.Themes, "theme", nil,
		"Filter by theme tag (repeatable, any match passes)")
	cmd.Flags().StringSliceVar(&flags.Venues, "venue", nil,
		"Filter by suggested venue tag (repeatable, any match passes)")
	cmd.Flags().StringVar(&flags.Status, "status", "",
		"Filter by status: private, public, draft")
	cmd.Flags().StringVar(&flags.Sort, "sort", "title",
		"Sort key: title, theme_count, venue_count")
	cmd.Flags().StringVar(&flags.Order, "order", "asc",
		"Sort order: asc, desc")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}
