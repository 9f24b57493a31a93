// Package pipeline turns a playlist reference or a track file into a
// printable tile document.
//
// The CLI and the HTTP server both go through a [Runner], so caching and
// defaults behave the same everywhere.
//
// # Stages
//
//  1. Fetch: resolve the playlist through a [Source] (cached), or read a
//     JSON/CSV track file
//  2. Generate: assemble the tile document and encode it as PDF, or as a
//     JSON dump of every drawing operation
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, client, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Playlist: "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(result.Filename, result.Artifact, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/songtiles/pkg/assemble"
	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/render"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFilename is the name of a generated PDF.
const DefaultFilename = "blind-song-scanner-tiles.pdf"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures a pipeline run.
type Options struct {
	// Input, exactly one of which is used by Fetch.
	Playlist string `json:"playlist,omitempty"` // URL, URI or ID
	Input    string `json:"input,omitempty"`    // path to a .json or .csv track file

	// Output
	Format string         `json:"format,omitempty"`
	Layout layout.Options `json:"layout"`
	// Footer replaces the page footer; nil keeps the default and "" drops it.
	Footer      *string       `json:"footer,omitempty"`
	Concurrency int           `json:"concurrency,omitempty"`
	CodeTimeout time.Duration `json:"code_timeout,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of a run.
type Result struct {
	Tracks      []track.Track
	Artifact    []byte
	Filename    string
	ContentType string
	// Warnings lists text fields that will not fit on their tile.
	Warnings  []track.Warning
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings and document counts.
type Stats struct {
	FetchTime    time.Duration
	GenerateTime time.Duration
	// Document is nil when the artifact came from the cache.
	Document *assemble.Stats
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	FetchHit    bool
	GenerateHit bool
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be pdf or json)", format)
	}
	return nil
}

// ValidateForFetch checks that exactly one input is set.
func (o *Options) ValidateForFetch() error {
	o.setLogger()
	switch {
	case o.Playlist == "" && o.Input == "":
		return errors.New(errors.ErrCodeInvalidInput, "a playlist or an input file is required")
	case o.Playlist != "" && o.Input != "":
		return errors.New(errors.ErrCodeInvalidInput, "give either a playlist or an input file, not both")
	}
	return nil
}

// ValidateForGenerate applies output defaults and validates them.
func (o *Options) ValidateForGenerate() error {
	o.setLogger()
	if o.Format == "" {
		o.Format = FormatPDF
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.Layout.SetDefaults()
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency cannot be negative")
	}
	if o.CodeTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "code timeout cannot be negative")
	}
	return nil
}

// ValidateAndSetDefaults validates the options of a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	return o.ValidateForGenerate()
}

// FooterText returns the footer to print.
func (o *Options) FooterText() string {
	if o.Footer == nil {
		return render.DefaultFooter
	}
	return *o.Footer
}

// Filename returns the artifact file name for the output format.
func (o *Options) Filename() string {
	if o.Format == FormatJSON {
		return "blind-song-scanner-tiles.json"
	}
	return DefaultFilename
}

// ContentType returns the MIME type of the output format.
func (o *Options) ContentType() string {
	return contentTypes[o.Format]
}

// ArtifactKeyOpts returns cache key options for the generated document.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
		Layout: o.Layout,
		Footer: o.FooterText(),
	}
}

// AssembleOptions returns the assembler configuration.
func (o *Options) AssembleOptions() assemble.Options {
	style := render.DefaultStyle()
	style.Footer = o.FooterText()
	return assemble.Options{
		Layout:      o.Layout,
		Style:       style,
		Concurrency: o.Concurrency,
		CodeTimeout: o.CodeTimeout,
		Logger:      o.Logger,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
