package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/egodevrjm/songstore/internal/utils/ptr"
	"github.com/egodevrjm/songstore/pkg/songs"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save [song-id]",
	Short: "Create or update a song",
	Long: `Save writes a song to the content repository, republishes the
derived index files, and reloads the catalog.

Without a song id, a new song is created and its id is derived from the
title. Only the fields whose flags are given are changed; everything
else is left as it is. Lyrics can be read from a file or from a full
song JSON record via --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().String("title", "", "Song title")
	saveCmd.Flags().String("lyrics-file", "", "Read lyrics from this file")
	saveCmd.Flags().String("notes", "", "Working notes")
	saveCmd.Flags().String("sounds-like-acoustic", "", "Acoustic reference description")
	saveCmd.Flags().String("sounds-like-recording", "", "Recording reference description")
	saveCmd.Flags().String("status", "", "Status: private, public, draft")
	saveCmd.Flags().StringSlice("theme", nil, "Theme tags (replaces the current list)")
	saveCmd.Flags().StringSlice("venue", nil, "Suggested venue tags (replaces the current list)")
	saveCmd.Flags().String("file", "", "Read a full song JSON record instead of field flags")
}

func runSave(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	patch, err := buildPatch(cmd)
	if err != nil {
		return err
	}

	c, err := loadedWriteClient(cmd.Context())
	if err != nil {
		return err
	}

	song, report, err := c.SaveSong(cmd.Context(), id, patch)
	if report != nil && report.Failed != nil {
		// The song file itself is durable; tell the caller what remains.
		fmt.Fprintf(os.Stderr, "Song %s saved, but publishing stopped at %s: %v\n",
			report.SongID, report.Failed.Path, report.Failed.Err)
		fmt.Fprintf(os.Stderr, "Retry with: songstore publish %s\n", report.SongID)
		return err
	}
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		fmt.Printf("Saved %s (%d index files updated)\n", song.SongID, len(report.Updated))
	}
	return nil
}

// buildPatch assembles a patch from the save flags. Only flags the user
// actually set become part of the patch.
func buildPatch(cmd *cobra.Command) (songs.SongPatch, error) {
	var patch songs.SongPatch

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return patch, err
		}
		var song songs.Song
		if err := json.Unmarshal(data, &song); err != nil {
			return patch, fmt.Errorf("parsing %s: %w", file, err)
		}
		return songs.PatchOf(&song), nil
	}

	setString := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = ptr.String(v)
		}
	}
	setString("title", &patch.Title)
	setString("notes", &patch.Notes)
	setString("sounds-like-acoustic", &patch.SoundsLikeAcoustic)
	setString("sounds-like-recording", &patch.SoundsLikeRecording)

	if cmd.Flags().Changed("lyrics-file") {
		file, _ := cmd.Flags().GetString("lyrics-file")
		data, err := os.ReadFile(file)
		if err != nil {
			return patch, err
		}
		patch.Lyrics = ptr.String(string(data))
	}

	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		patch.Status = ptr.To(songs.Status(v))
	}

	if cmd.Flags().Changed("theme") {
		raw, _ := cmd.Flags().GetStringSlice("theme")
		patch.Themes = ptr.Strings(normalizeTags(raw))
	}
	if cmd.Flags().Changed("venue") {
		raw, _ := cmd.Flags().GetStringSlice("venue")
		patch.SuggestedVenues = ptr.Strings(normalizeTags(raw))
	}

	return patch, nil
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if normalized := songs.NormalizeTag(tag); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	return tags
}
