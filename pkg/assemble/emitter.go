package assemble

import (
	"context"
	"image"

	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/render"
	"github.com/matzehuels/songtiles/pkg/track"
)

type state int

const (
	stateFronts state = iota
	stateBacks
	stateDone
)

func (s state) String() string {
	switch s {
	case stateFronts:
		return "fronts"
	case stateBacks:
		return "backs"
	default:
		return "done"
	}
}

// emitter draws a document from resolved data. It is the sole owner of
// page creation: one front page, then one back page, per group.
type emitter struct {
	r      *render.Renderer
	canvas render.Canvas
	opts   Options
	tracks []track.Track
	images []image.Image
	groups []layout.Group
	stats  *Stats
}

func newEmitter(r *render.Renderer, c render.Canvas, opts Options, tracks []track.Track, images []image.Image, stats *Stats) *emitter {
	groups := layout.Partition(len(tracks), opts.Layout.Capacity())
	stats.Groups = len(groups)
	return &emitter{
		r:      r,
		canvas: c,
		opts:   opts,
		tracks: tracks,
		images: images,
		groups: groups,
		stats:  stats,
	}
}

func (e *emitter) run(ctx context.Context) error {
	if len(e.groups) == 0 {
		// An empty track list still yields a valid one-page document.
		return e.startPage()
	}

	st, gi := stateFronts, 0
	for st != stateDone {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := e.groups[gi]
		e.opts.Logger.Debug("emit", "state", st, "group", g.Index)
		switch st {
		case stateFronts:
			if err := e.emitFronts(g); err != nil {
				return err
			}
			st = stateBacks
		case stateBacks:
			if err := e.emitBacks(g); err != nil {
				return err
			}
			gi++
			st = stateFronts
			if gi == len(e.groups) {
				st = stateDone
			}
		}
	}
	return nil
}

func (e *emitter) emitFronts(g layout.Group) error {
	if err := e.startPage(); err != nil {
		return err
	}
	for i := g.Start; i < g.End; i++ {
		if err := e.r.RenderFrontTile(e.opts.Layout.Front(i), e.tracks[i]); err != nil {
			return err
		}
		e.stats.Fronts++
	}
	return nil
}

func (e *emitter) emitBacks(g layout.Group) error {
	if g.Partial(e.opts.Layout.Capacity()) {
		e.stats.PartialGroup = true
		e.opts.Logger.Debug("partial page group", "group", g.Index, "tiles", g.Len())
	}
	if err := e.startPage(); err != nil {
		return err
	}
	for i := g.Start; i < g.End; i++ {
		if err := e.r.RenderBackTile(e.opts.Layout.Back(i), e.images[i]); err != nil {
			return err
		}
		e.stats.Backs++
	}
	return nil
}

func (e *emitter) startPage() error {
	e.canvas.AddPage()
	return e.r.RenderPageFooter(e.canvas.PageCount() - 1)
}
