// Package pdf implements render.Canvas on top of github.com/signintech/gopdf.
//
// Coordinates arrive in centimetres and are converted to PDF points here,
// so the rest of the module never deals with points except for font sizes.
// Fonts come from the embedded Go font family in pkg/fonts.
package pdf

import (
	"image"
	"io"
	"time"

	"github.com/signintech/gopdf"

	"github.com/matzehuels/songtiles/pkg/buildinfo"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/fonts"
	"github.com/matzehuels/songtiles/pkg/render"
)

// PointsPerCM is the exact PDF point size of a centimetre (72 / 2.54).
const PointsPerCM = 72 / 2.54

// Option configures a [Canvas].
type Option func(*Canvas)

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(c *Canvas) { c.title = title }
}

// WithCreationDate pins the creation date metadata, which otherwise
// defaults to the time the canvas was created.
func WithCreationDate(t time.Time) Option {
	return func(c *Canvas) { c.created = t }
}

// Canvas draws onto a gopdf document.
type Canvas struct {
	doc     *gopdf.GoPdf
	pages   int
	title   string
	created time.Time
}

// New starts a document of the given page size in centimetres.
func New(widthCM, heightCM float64, opts ...Option) (*Canvas, error) {
	c := &Canvas{doc: &gopdf.GoPdf{}, created: time.Now()}
	for _, opt := range opts {
		opt(c)
	}

	c.doc.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: pt(widthCM), H: pt(heightCM)},
	})
	c.doc.SetInfo(gopdf.PdfInfo{
		Title:        c.title,
		Creator:      buildinfo.UserAgent(),
		Producer:     "gopdf",
		CreationDate: c.created,
	})
	for _, f := range fonts.All() {
		if err := c.doc.AddTTFFontData(f.Name, f.TTF); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "load font %s", f.Name)
		}
	}
	return c, nil
}

// AddPage starts a new page.
func (c *Canvas) AddPage() {
	c.doc.AddPage()
	c.pages++
}

// PageCount returns the number of pages added.
func (c *Canvas) PageCount() int { return c.pages }

// StrokeRect outlines a rectangle in black.
func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64) error {
	c.doc.SetLineWidth(pt(lineWidth))
	c.doc.SetStrokeColor(0, 0, 0)
	c.doc.RectFromUpperLeftWithStyle(pt(x), pt(y), pt(w), pt(h), "D")
	return nil
}

// Text draws s centred on (cx, cy). The cell is maxWidth wide; longer text
// spills over both sides evenly rather than wrapping.
func (c *Canvas) Text(s string, cx, cy, maxWidth float64, font render.Font) error {
	family := fonts.Regular
	if font.Bold {
		family = fonts.Bold
	}
	if err := c.doc.SetFont(family, "", font.Size); err != nil {
		return err
	}
	c.doc.SetTextColor(font.Gray, font.Gray, font.Gray)
	defer c.doc.SetTextColor(0, 0, 0)

	w := pt(maxWidth)
	if tw, err := c.doc.MeasureTextWidth(s); err == nil && tw > w {
		w = tw
	}
	h := font.Size
	c.doc.SetXY(pt(cx)-w/2, pt(cy)-h/2)
	return c.doc.CellWithOption(&gopdf.Rect{W: w, H: h}, s, gopdf.CellOption{
		Align: gopdf.Center | gopdf.Middle,
	})
}

// Image draws img into the given box.
func (c *Canvas) Image(img image.Image, x, y, w, h float64) error {
	return c.doc.ImageFrom(img, pt(x), pt(y), &gopdf.Rect{W: pt(w), H: pt(h)})
}

// Finish writes the PDF to w.
func (c *Canvas) Finish(w io.Writer) error {
	if err := c.doc.Write(w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write pdf")
	}
	return nil
}

func pt(cm float64) float64 { return cm * PointsPerCM }

var _ render.Canvas = (*Canvas)(nil)
