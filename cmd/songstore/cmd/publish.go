package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/internal/cmd/output"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/publish"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <song-id>",
	Short: "Republish the derived index files for a song",
	Long: `Publish brings the denormalized index files (catalog, search,
per-theme, per-venue, per-status) up to date with one song's current
state.

Saving a song publishes automatically; this command exists to retry a
partially failed publish. Use --skip to leave out files a previous run
already wrote.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringSlice("skip", nil, "Paths already written by a prior run")
}

func runPublish(cmd *cobra.Command, args []string) error {
	c, err := loadedWriteClient(cmd.Context())
	if err != nil {
		return err
	}

	publisher := c.Publisher()
	if publisher == nil {
		return errors.NewValidationError("repository", "", "a repository owner and name are required for writes")
	}

	song, ok := c.Store().FindByID(args[0])
	if !ok {
		return errors.NewNotFoundError("song", args[0])
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	report, err := publisher.Publish(cmd.Context(), song, publish.WithSkipPaths(skip...))
	if report != nil && report.Failed != nil {
		fmt.Printf("Publishing stopped at %s; %d of %d files written\n",
			report.Failed.Path, len(report.Updated), len(publish.Steps(song)))
		return err
	}
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		return output.FormatAny(report, globalFlags)
	}
	return nil
}
