package cmd

import (
	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/internal/cmd/output"
	"github.com/egodevrjm/songstore/pkg/errors"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <song-id>",
	Short: "Show one song in full",
	Long: `Show prints a single song record, including lyrics, notes, tags,
and attached media. Use --output json or --output yaml for the raw
record.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	c, err := loadedClient(cmd.Context())
	if err != nil {
		return err
	}

	song, ok := c.Store().FindByID(args[0])
	if !ok {
		return errors.NewNotFoundError("song", args[0])
	}

	return output.FormatAny(song, globalFlags)
}
