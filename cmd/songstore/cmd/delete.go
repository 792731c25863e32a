package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <song-id>",
	Short: "Delete a song from the content repository",
	Long: `Delete removes the song file from the content repository and reloads
the catalog. Derived index files keep their entry until the affected
tags are next republished.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("Delete song %q? [y/N]: ", id)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	c, err := loadedWriteClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := c.DeleteSong(cmd.Context(), id); err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Printf("Deleted %s\n", id)
	}
	return nil
}
