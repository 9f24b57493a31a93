package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/songtiles/pkg/assemble"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/io"
	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/pipeline"
)

// generateFlags holds the flags of the generate command.
type generateFlags struct {
	output      string
	format      string
	footer      string
	noFooter    bool
	concurrency int
	codeTimeout time.Duration
	refresh     bool
	noCache     bool
	review      bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <playlist|file>",
		Short: "Generate the printable tile sheet",
		Long: `Generate a double-sided sheet of song tiles.

The argument is a Spotify playlist link, URI or ID, or a track file
(.json or .csv) written by "songtiles tracks -o".

Print the PDF double-sided, flipping on the long edge, so every back
lines up with its front. Then cut along the tile borders.`,
		Example: `  songtiles generate https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M
  songtiles generate tracks.csv -o party.pdf --footer "Party 2026"
  songtiles generate 37i9dQZF1DXcBWIGoYBM5M --review`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.generateOptions(cmd.Flags(), args[0], flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, flags)
		},
	}

	flags.register(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("footer", "no-footer")

	return cmd
}

func (f *generateFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: blind-song-scanner-tiles.<format>)")
	fs.StringVarP(&f.format, "format", "f", pipeline.FormatPDF, "output format: pdf or json")
	fs.StringVar(&f.footer, "footer", "", "footer text printed on every page")
	fs.BoolVar(&f.noFooter, "no-footer", false, "omit the page footer")
	fs.IntVar(&f.concurrency, "concurrency", 0, fmt.Sprintf("QR codes encoded in parallel (default %d)", assemble.DefaultConcurrency))
	fs.DurationVar(&f.codeTimeout, "code-timeout", 0, "give up on a single QR code after this long")
	fs.BoolVar(&f.refresh, "refresh", false, "bypass cached playlists and documents")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the local cache")
	fs.BoolVar(&f.review, "review", false, "review and edit tracks before rendering")
}

// generateOptions merges configuration and flags into pipeline options.
func (c *CLI) generateOptions(fs *pflag.FlagSet, arg string, flags generateFlags) (pipeline.Options, error) {
	opts := c.baseOptions()
	if isTrackFile(arg) {
		opts.Input = arg
	} else {
		opts.Playlist = arg
	}

	opts.Format = flags.format
	opts.Refresh = flags.refresh
	switch {
	case flags.noFooter:
		empty := ""
		opts.Footer = &empty
	case fs.Changed("footer"):
		footer := flags.footer
		opts.Footer = &footer
	}
	if fs.Changed("concurrency") {
		opts.Concurrency = flags.concurrency
	}
	if fs.Changed("code-timeout") {
		opts.CodeTimeout = flags.codeTimeout
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, flags generateFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, "Loading tracks...")
	spinner.Start()

	prog := newProgress(c.Logger)
	tracks, cached, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Could not load tracks")
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d tracks", tracks.Len()))

	if flags.review {
		spinner.Stop()
		edited, ok, err := runReview(ctx, tracks)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Review cancelled, nothing written")
			return nil
		}
		tracks = edited
		spinner = newSpinnerWithContext(ctx, "")
		spinner.Start()
	}

	spinner.Update(fmt.Sprintf("Rendering %d tiles...", tracks.Len()))
	prog = newProgress(c.Logger)
	result, err := runner.Generate(ctx, tracks, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	prog.done("Rendered document")

	path := flags.output
	if path == "" {
		path = result.Filename
	}
	if err := writeArtifact(path, result.Artifact); err != nil {
		spinner.StopWithError("Could not write output")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %d tiles", len(result.Tracks)))
	printFile(path)
	printStats(len(result.Tracks), pageCount(result, opts), cached || result.CacheInfo.GenerateHit)
	if d := result.Stats.Document; d != nil && d.CodeFailures > 0 {
		printWarning("%d QR codes could not be generated; their backs are blank", d.CodeFailures)
	}
	printTextWarnings(result.Tracks, result.Warnings)
	return nil
}

// isTrackFile reports whether arg names a .json or .csv track file.
func isTrackFile(arg string) bool {
	_, err := io.FormatFromPath(arg)
	return err == nil
}

func pageCount(result *pipeline.Result, opts pipeline.Options) int {
	if result.Stats.Document != nil {
		return result.Stats.Document.Pages
	}
	return layout.PageCount(len(result.Tracks), opts.Layout.Capacity())
}

// writeArtifact writes data to path, creating missing parent directories.
func writeArtifact(path string, data []byte) error {
	if err := errors.ValidateFilename(filepath.Base(path)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
