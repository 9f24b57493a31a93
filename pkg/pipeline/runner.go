package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/songtiles/pkg/assemble"
	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/integrations/spotify"
	"github.com/matzehuels/songtiles/pkg/io"
	"github.com/matzehuels/songtiles/pkg/observability"
	"github.com/matzehuels/songtiles/pkg/qrcode"
	"github.com/matzehuels/songtiles/pkg/render"
	"github.com/matzehuels/songtiles/pkg/render/pdf"
	"github.com/matzehuels/songtiles/pkg/render/record"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Source looks up the tracks of a playlist.
type Source interface {
	PlaylistTracks(ctx context.Context, id string) ([]track.Track, error)
}

// documentEpoch is stamped into every PDF as its creation date so that
// identical inputs produce identical bytes.
var documentEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner executes pipeline stages with caching. It holds no per-run
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Source Source
	// Generator renders code images; nil uses the QR encoder.
	Generator qrcode.Generator
	Logger    *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// uses the default keys and a nil source only allows file input.
func NewRunner(c cache.Cache, keyer cache.Keyer, src Source, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Source: src, Logger: logger}
}

// Execute fetches the tracks and generates the document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	tracks, hit, err := r.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	fetchTime := time.Since(start)
	r.Logger.Info("loaded tracks", "count", tracks.Len(), "cached", hit, "duration", fetchTime)

	result, err := r.Generate(ctx, tracks, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = fetchTime
	result.CacheInfo.FetchHit = hit
	return result, nil
}

// Fetch returns the tracks named by opts.Playlist or opts.Input.
func (r *Runner) Fetch(ctx context.Context, opts Options) (track.List, error) {
	tracks, _, err := r.FetchWithCacheInfo(ctx, opts)
	return tracks, err
}

// FetchWithCacheInfo is [Runner.Fetch] that also reports a cache hit.
// Track files are never cached.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (track.List, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return track.List{}, false, err
	}
	if opts.Input != "" {
		start := time.Now()
		observability.Pipeline().OnFetchStart(ctx, observability.SourceFile, opts.Input)
		tracks, err := io.Import(opts.Input)
		observability.Pipeline().OnFetchComplete(ctx, observability.SourceFile, opts.Input, len(tracks), time.Since(start), err)
		if err != nil {
			return track.List{}, false, err
		}
		return track.NewList(tracks), false, nil
	}

	id, err := spotify.ExtractPlaylistID(opts.Playlist)
	if err != nil {
		return track.List{}, false, err
	}
	key := r.Keyer.PlaylistKey(id)

	if !opts.Refresh {
		var cached []track.Track
		ok, err := cache.GetJSON(ctx, r.Cache, key, &cached)
		if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		if ok {
			observability.Cache().OnCacheHit(ctx, observability.KeyPlaylist)
			r.Logger.Debug("playlist cache hit", "playlist", id)
			return track.NewList(cached), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyPlaylist)
	}

	if r.Source == nil {
		return track.List{}, false, errors.New(errors.ErrCodeUnauthorized,
			"playlist lookup is not configured: set %s and %s", spotify.EnvClientID, spotify.EnvClientSecret)
	}
	start := time.Now()
	observability.Pipeline().OnFetchStart(ctx, observability.SourceSpotify, id)
	tracks, err := r.Source.PlaylistTracks(ctx, id)
	observability.Pipeline().OnFetchComplete(ctx, observability.SourceSpotify, id, len(tracks), time.Since(start), err)
	if err != nil {
		return track.List{}, false, err
	}
	if err := cache.SetJSON(ctx, r.Cache, key, tracks, cache.TTLPlaylist); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.KeyPlaylist, len(tracks))
	}
	return track.NewList(tracks), false, nil
}

// Generate renders tracks into the requested format. Documents are cached
// by content, so regenerating an unchanged list is a cache read.
func (r *Runner) Generate(ctx context.Context, tracks track.List, opts Options) (*Result, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}

	result := &Result{
		Tracks:      tracks.Tracks(),
		Filename:    opts.Filename(),
		ContentType: opts.ContentType(),
		Warnings:    tracks.Warnings(),
	}
	for _, w := range result.Warnings {
		r.Logger.Debug("text may overflow tile", "index", w.Index, "field", w.Field, "length", w.Length)
	}

	hash, err := cache.HashJSON(result.Tracks)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash track list")
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts())

	start := time.Now()
	if !opts.Refresh {
		if data, ok, _ := r.Cache.Get(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, observability.KeyArtifact)
			result.Artifact = data
			result.CacheInfo.GenerateHit = true
			result.Stats.GenerateTime = time.Since(start)
			r.Logger.Debug("document cache hit", "key", key)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyArtifact)
	}

	observability.Pipeline().OnGenerateStart(ctx, opts.Format, len(result.Tracks))
	stats, err := r.build(ctx, result, opts)
	pages := 0
	if stats != nil {
		pages = stats.Pages
	}
	observability.Pipeline().OnGenerateComplete(ctx, opts.Format, pages, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Stats.Document = stats
	result.Stats.GenerateTime = time.Since(start)

	// Documents with missing codes are not cached so a transient
	// failure is retried on the next request.
	if stats.CodeFailures > 0 {
		r.Logger.Debug("document not cached", "key", key, "codes_omitted", stats.CodeFailures)
	} else if err := r.Cache.Set(ctx, key, result.Artifact, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.KeyArtifact, len(result.Artifact))
	}

	r.Logger.Info("generated document",
		"format", opts.Format,
		"pages", stats.Pages,
		"codes_omitted", stats.CodeFailures,
		"duration", result.Stats.GenerateTime)
	return result, nil
}

// build renders result.Tracks into result.Artifact.
func (r *Runner) build(ctx context.Context, result *Result, opts Options) (*assemble.Stats, error) {
	canvas, err := newCanvas(opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	stats, err := assemble.New(r.Generator, opts.AssembleOptions()).Build(ctx, result.Tracks, canvas, &buf)
	if err != nil {
		return nil, err
	}
	result.Artifact = buf.Bytes()
	return stats, nil
}

func newCanvas(opts Options) (render.Canvas, error) {
	if opts.Format == FormatJSON {
		return record.New(), nil
	}
	c, err := pdf.New(opts.Layout.PageWidth, opts.Layout.PageHeight,
		pdf.WithTitle("Song tiles"),
		pdf.WithCreationDate(documentEpoch),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "start PDF document")
	}
	return c, nil
}
