package assemble

import (
	"bytes"
	"context"
	"image"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/qrcode"
	"github.com/matzehuels/songtiles/pkg/render"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Stats summarizes an assembly run.
type Stats struct {
	Tracks       int           `json:"tracks"`
	Groups       int           `json:"groups"`
	Pages        int           `json:"pages"`
	Fronts       int           `json:"fronts"`
	Backs        int           `json:"backs"`
	Codes        int           `json:"codes"`
	CodeFailures int           `json:"code_failures"`
	PartialGroup bool          `json:"partial_group"`
	ResolveTime  time.Duration `json:"resolve_time"`
	EmitTime     time.Duration `json:"emit_time"`
}

// Assembler owns page creation and code image requests for one document
// at a time. It holds no per-document state and may be reused.
type Assembler struct {
	gen  qrcode.Generator
	opts Options
}

// New returns an assembler using gen for code images. A nil gen uses
// [qrcode.NewEncoder].
func New(gen qrcode.Generator, opts Options) *Assembler {
	if gen == nil {
		gen = qrcode.NewEncoder()
	}
	opts.SetDefaults()
	return &Assembler{gen: gen, opts: opts}
}

// Options returns the effective options.
func (a *Assembler) Options() Options { return a.opts }

// Assemble draws tracks onto c. The canvas is left open; see [Assembler.Build]
// for a finished document.
func (a *Assembler) Assemble(ctx context.Context, tracks []track.Track, c render.Canvas) (*Stats, error) {
	if err := a.opts.Layout.Validate(); err != nil {
		return nil, err
	}

	stats := &Stats{Tracks: len(tracks)}

	start := time.Now()
	images, failures, err := a.resolve(ctx, tracks)
	if err != nil {
		return nil, err
	}
	stats.ResolveTime = time.Since(start)
	stats.CodeFailures = failures
	stats.Codes = len(tracks) - failures

	start = time.Now()
	e := newEmitter(render.NewRenderer(c, a.opts.Layout, a.opts.Style), c, a.opts, tracks, images, stats)
	if err := e.run(ctx); err != nil {
		return nil, err
	}
	stats.EmitTime = time.Since(start)
	stats.Pages = c.PageCount()

	a.opts.Logger.Debug("assembled document",
		"tracks", stats.Tracks,
		"pages", stats.Pages,
		"codes", stats.Codes,
		"code_failures", stats.CodeFailures)
	return stats, nil
}

// Build assembles tracks onto c, finishes the document and copies it to w.
// Nothing is written to w unless every step succeeds.
func (a *Assembler) Build(ctx context.Context, tracks []track.Track, c render.Canvas, w io.Writer) (*Stats, error) {
	stats, err := a.Assemble(ctx, tracks, c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "finish document")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write document")
	}
	return stats, nil
}

// resolve generates all code images concurrently. Per-tile failures leave
// a nil entry; only context cancellation is returned as an error.
func (a *Assembler) resolve(ctx context.Context, tracks []track.Track) ([]image.Image, int, error) {
	images := make([]image.Image, len(tracks))
	failed := make([]bool, len(tracks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for i, t := range tracks {
		g.Go(func() error {
			img, err := a.generate(gctx, t.URL())
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed[i] = true
				a.opts.Logger.Warn("code image omitted",
					"index", i,
					"title", t.Title,
					"err", err)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	failures := 0
	for _, f := range failed {
		if f {
			failures++
		}
	}
	return images, failures, nil
}

type generateResult struct {
	img image.Image
	err error
}

// generate runs one request under the per-tile timeout. A generator that
// ignores its context is abandoned when the timeout fires.
func (a *Assembler) generate(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.CodeTimeout)
	defer cancel()

	done := make(chan generateResult, 1)
	go func() {
		img, err := a.gen.Generate(ctx, url, a.opts.PixelSize)
		done <- generateResult{img, err}
	}()

	select {
	case r := <-done:
		if r.err == nil && r.img == nil {
			return nil, errors.New(errors.ErrCodeEncode, "generator returned no image")
		}
		return r.img, r.err
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "code image for %s", url)
	}
}
