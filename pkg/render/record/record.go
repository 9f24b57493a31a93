// Package record implements an in-memory render.Canvas that logs every
// drawing operation. The log serializes to JSON, which makes it both the
// "json" output format (a machine-readable dump of where every tile and
// line of text landed) and a convenient fixture for tests.
package record

import (
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/matzehuels/songtiles/pkg/render"
)

// Op kinds.
const (
	KindRect  = "rect"
	KindText  = "text"
	KindImage = "image"
)

// Op is one drawing operation.
type Op struct {
	Kind      string       `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	W         float64      `json:"w,omitempty"`
	H         float64      `json:"h,omitempty"`
	LineWidth float64      `json:"line_width,omitempty"`
	Text      string       `json:"text,omitempty"`
	Font      *render.Font `json:"font,omitempty"`
	Pixels    int          `json:"pixels,omitempty"` // image width in pixels
}

// Page holds the operations drawn on one page.
type Page struct {
	Index int  `json:"index"`
	Ops   []Op `json:"ops"`
}

// Count returns the number of operations of the given kind on the page.
func (p Page) Count(kind string) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the text operations on the page in drawing order.
func (p Page) Texts() []Op {
	var out []Op
	for _, op := range p.Ops {
		if op.Kind == KindText {
			out = append(out, op)
		}
	}
	return out
}

// Canvas records drawing operations.
type Canvas struct {
	pages    []Page
	finished bool
}

// New returns an empty recording canvas.
func New() *Canvas {
	return &Canvas{}
}

// AddPage starts a new page.
func (c *Canvas) AddPage() {
	c.pages = append(c.pages, Page{Index: len(c.pages)})
}

// PageCount returns the number of pages.
func (c *Canvas) PageCount() int { return len(c.pages) }

// Pages returns the recorded pages.
func (c *Canvas) Pages() []Page { return c.pages }

// StrokeRect records a rectangle outline.
func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64) error {
	return c.record(Op{Kind: KindRect, X: x, Y: y, W: w, H: h, LineWidth: lineWidth})
}

// Text records a line of text.
func (c *Canvas) Text(s string, cx, cy, maxWidth float64, font render.Font) error {
	f := font
	return c.record(Op{Kind: KindText, X: cx, Y: cy, W: maxWidth, Text: s, Font: &f})
}

// Image records an image placement.
func (c *Canvas) Image(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	return c.record(Op{Kind: KindImage, X: x, Y: y, W: w, H: h, Pixels: img.Bounds().Dx()})
}

// Finish writes the recorded pages as indented JSON.
func (c *Canvas) Finish(w io.Writer) error {
	if c.finished {
		return fmt.Errorf("canvas already finished")
	}
	c.finished = true
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Pages []Page `json:"pages"`
	}{c.pages})
}

func (c *Canvas) record(op Op) error {
	if c.finished {
		return fmt.Errorf("canvas already finished")
	}
	if len(c.pages) == 0 {
		return fmt.Errorf("no page: call AddPage first")
	}
	p := &c.pages[len(c.pages)-1]
	p.Ops = append(p.Ops, op)
	return nil
}

var _ render.Canvas = (*Canvas)(nil)
