package render

import (
	"image"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Renderer draws tiles and footers onto a [Canvas].
type Renderer struct {
	canvas Canvas
	layout layout.Options
	style  Style
}

// NewRenderer returns a renderer drawing onto c.
func NewRenderer(c Canvas, opts layout.Options, style Style) *Renderer {
	return &Renderer{canvas: c, layout: opts, style: style}
}

// Canvas returns the canvas the renderer draws onto.
func (r *Renderer) Canvas() Canvas { return r.canvas }

// RenderFrontTile draws the border and the artist, title and year of t.
// A missing year draws as an empty line.
func (r *Renderer) RenderFrontTile(p layout.Placement, t track.Track) error {
	if err := r.border(p); err != nil {
		return err
	}
	lines := []struct {
		text   string
		offset float64
		font   Font
	}{
		{t.Artist, r.style.ArtistOffset, r.style.ArtistFont},
		{t.Title, r.style.TitleOffset, r.style.TitleFont},
		{t.YearText(), r.style.YearOffset, r.style.YearFont},
	}
	maxWidth := p.Size - r.style.TextPadding
	for _, l := range lines {
		if err := r.canvas.Text(l.text, p.CenterX(), p.Y+l.offset*p.Size, maxWidth, l.font); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "draw text for track %d", p.Index)
		}
	}
	return nil
}

// RenderBackTile draws the border at the mirrored position and, when img is
// non-nil, the code image inset from it. The border is drawn even without
// an image so it still serves as a cutting guide.
func (r *Renderer) RenderBackTile(p layout.Placement, img image.Image) error {
	if err := r.border(p); err != nil {
		return err
	}
	if img == nil {
		return nil
	}
	inset := r.style.ImageInset
	side := p.Size - 2*inset
	if err := r.canvas.Image(img, p.X+inset, p.Y+inset, side, side); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "draw code for track %d", p.Index)
	}
	return nil
}

// RenderPageFooter stamps the footer text centred near the bottom of the
// current page. pageIndex is accepted for symmetry with the tile methods;
// every page carries the same footer.
func (r *Renderer) RenderPageFooter(pageIndex int) error {
	if r.style.Footer == "" {
		return nil
	}
	cx := r.layout.PageWidth / 2
	cy := r.layout.PageHeight - r.style.FooterInset
	if err := r.canvas.Text(r.style.Footer, cx, cy, r.layout.PageWidth, r.style.FooterFont); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "draw footer on page %d", pageIndex)
	}
	return nil
}

func (r *Renderer) border(p layout.Placement) error {
	if err := r.canvas.StrokeRect(p.X, p.Y, p.Size, p.Size, r.style.BorderWidth); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "draw border for track %d", p.Index)
	}
	return nil
}
