package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/songtiles/pkg/io"
	"github.com/matzehuels/songtiles/pkg/track"
)

type tracksFlags struct {
	output  string
	refresh bool
	noCache bool
	review  bool
}

func (c *CLI) tracksCommand() *cobra.Command {
	var flags tracksFlags

	cmd := &cobra.Command{
		Use:   "tracks <playlist|file>",
		Short: "List the tracks of a playlist and optionally save them",
		Long: `List the tracks that would be printed, flagging titles and artists that
are too long for a tile.

Save them with -o to a .json or .csv file, edit it, and pass the file to
"songtiles generate".`,
		Example: `  songtiles tracks 37i9dQZF1DXcBWIGoYBM5M
  songtiles tracks spotify:playlist:37i9dQZF1DXcBWIGoYBM5M -o tracks.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTracks(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "save tracks to a .json or .csv file")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass the cached playlist")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the local cache")
	cmd.Flags().BoolVar(&flags.review, "review", false, "review and edit tracks before saving")

	return cmd
}

func (c *CLI) runTracks(ctx context.Context, arg string, flags tracksFlags) error {
	if flags.output != "" {
		if _, err := io.FormatFromPath(flags.output); err != nil {
			return err
		}
	}

	opts := c.baseOptions()
	if isTrackFile(arg) {
		opts.Input = arg
	} else {
		opts.Playlist = arg
	}
	opts.Refresh = flags.refresh

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, "Loading tracks...")
	spinner.Start()
	tracks, cached, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Could not load tracks")
		return err
	}
	spinner.Stop()

	if flags.review {
		edited, ok, err := runReview(ctx, tracks)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Review cancelled, nothing written")
			return nil
		}
		tracks = edited
	}

	printTrackList(tracks, cached)

	if flags.output == "" {
		printNextStep("Save for editing", fmt.Sprintf("%s tracks %s -o tracks.csv", appName, arg))
		return nil
	}
	if err := io.Export(tracks.Tracks(), flags.output); err != nil {
		return err
	}
	printSuccess("Saved %d tracks", tracks.Len())
	printFile(flags.output)
	printNextStep("Render tiles", fmt.Sprintf("%s generate %s", appName, flags.output))
	return nil
}

// printTrackList prints the whole list as a table followed by its
// overflow warnings.
func printTrackList(tracks track.List, cached bool) {
	fmt.Println(renderTrackTable(tracks, 0, tracks.Len(), -1))
	printStats(tracks.Len(), 0, cached)
	printTextWarnings(tracks.Tracks(), tracks.Warnings())
	printNewline()
}

