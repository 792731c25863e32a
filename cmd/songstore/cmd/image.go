package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// imageCmd groups the image subcommands
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage song images in the content repository",
}

// imageUploadCmd represents the image upload command
var imageUploadCmd = &cobra.Command{
	Use:   "upload <song-id> <file>",
	Short: "Upload an image for a song",
	Long: `Upload commits an image file under images/songs/<song-id>/ in the
content repository and prints the synced image record to attach to the
song.`,
	Args: cobra.ExactArgs(2),
	RunE: runImageUpload,
}

// imageDeleteCmd represents the image delete command
var imageDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete an uploaded image by its repository path",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageDelete,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageUploadCmd)
	imageCmd.AddCommand(imageDeleteCmd)

	imageDeleteCmd.Flags().String("sha", "", "Content digest of the image (discovered when omitted)")
}

func runImageUpload(cmd *cobra.Command, args []string) error {
	songID, file := args[0], args[1]

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	c, err := writeClient()
	if err != nil {
		return err
	}

	img, err := c.UploadImage(cmd.Context(), songID, filepath.Base(file), data)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Printf("Uploaded %s (%d bytes)\n", img.Filename, img.Size)
	}
	return nil
}

func runImageDelete(cmd *cobra.Command, args []string) error {
	path := args[0]

	c, err := writeClient()
	if err != nil {
		return err
	}

	sha, _ := cmd.Flags().GetString("sha")
	if sha == "" {
		contents := c.Contents()
		if contents == nil {
			return errors.NewValidationError("repository", "", "a repository owner and name are required for writes")
		}
		file, err := contents.Get(cmd.Context(), path)
		if err != nil {
			return err
		}
		sha = file.SHA
	}

	if err := c.DeleteImage(cmd.Context(), songs.Image{
		Name:     filepath.Base(path),
		Filename: path,
		SHA:      sha,
	}); err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Printf("Deleted %s\n", path)
	}
	return nil
}
