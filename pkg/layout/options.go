package layout

import "github.com/matzehuels/songtiles/pkg/errors"

// Default sheet geometry, in centimetres.
const (
	DefaultTileSize   = 6.0
	DefaultColumns    = 3
	DefaultRows       = 4
	DefaultMargin     = 1.5
	DefaultSpacing    = 0.0
	DefaultPageWidth  = 21.0 // A4
	DefaultPageHeight = 29.7 // A4
)

// Options describes the sheet geometry. All lengths share one unit
// (centimetres for the PDF sink).
type Options struct {
	TileSize   float64 `json:"tile_size" toml:"tile_size"`
	Columns    int     `json:"columns" toml:"columns"`
	Rows       int     `json:"rows" toml:"rows"`
	Margin     float64 `json:"margin" toml:"margin"`
	Spacing    float64 `json:"spacing" toml:"spacing"`
	PageWidth  float64 `json:"page_width" toml:"page_width"`
	PageHeight float64 `json:"page_height" toml:"page_height"`
}

// DefaultOptions returns the A4 sheet of 3×4 tiles of 6cm.
func DefaultOptions() Options {
	return Options{
		TileSize:   DefaultTileSize,
		Columns:    DefaultColumns,
		Rows:       DefaultRows,
		Margin:     DefaultMargin,
		Spacing:    DefaultSpacing,
		PageWidth:  DefaultPageWidth,
		PageHeight: DefaultPageHeight,
	}
}

// SetDefaults fills zero-valued fields from [DefaultOptions]. Spacing is
// left alone since zero is its default.
func (o *Options) SetDefaults() {
	d := DefaultOptions()
	if o.TileSize == 0 {
		o.TileSize = d.TileSize
	}
	if o.Columns == 0 {
		o.Columns = d.Columns
	}
	if o.Rows == 0 {
		o.Rows = d.Rows
	}
	if o.Margin == 0 {
		o.Margin = d.Margin
	}
	if o.PageWidth == 0 {
		o.PageWidth = d.PageWidth
	}
	if o.PageHeight == 0 {
		o.PageHeight = d.PageHeight
	}
}

// Capacity returns the number of tiles per page.
func (o Options) Capacity() int { return o.Rows * o.Columns }

// Pitch returns the distance between the origins of adjacent tiles.
func (o Options) Pitch() float64 { return o.TileSize + o.Spacing }

// Validate rejects geometry that cannot be printed.
func (o Options) Validate() error {
	switch {
	case o.TileSize <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "tile size must be positive, got %v", o.TileSize)
	case o.Columns <= 0 || o.Rows <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "grid must have at least one row and column, got %dx%d", o.Columns, o.Rows)
	case o.Margin < 0 || o.Spacing < 0:
		return errors.New(errors.ErrCodeInvalidLayout, "margin and spacing cannot be negative")
	case o.PageWidth <= 0 || o.PageHeight <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "page size must be positive")
	}
	if w := o.gridExtent(o.Columns); w > o.PageWidth {
		return errors.New(errors.ErrCodeInvalidLayout, "%d columns need %.2f, page is %.2f wide", o.Columns, w, o.PageWidth)
	}
	if h := o.gridExtent(o.Rows); h > o.PageHeight {
		return errors.New(errors.ErrCodeInvalidLayout, "%d rows need %.2f, page is %.2f high", o.Rows, h, o.PageHeight)
	}
	return nil
}

func (o Options) gridExtent(n int) float64 {
	return 2*o.Margin + float64(n)*o.TileSize + float64(n-1)*o.Spacing
}
