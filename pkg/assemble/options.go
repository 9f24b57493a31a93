package assemble

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/qrcode"
	"github.com/matzehuels/songtiles/pkg/render"
)

const (
	// DefaultConcurrency bounds in-flight code image requests.
	DefaultConcurrency = 8

	// DefaultCodeTimeout bounds a single code image request.
	DefaultCodeTimeout = 10 * time.Second
)

// Options configures an [Assembler].
type Options struct {
	Layout      layout.Options
	Style       render.Style
	Concurrency int
	CodeTimeout time.Duration
	// PixelSize is the code raster resolution. Zero derives it from the
	// tile size at one pixel per point.
	PixelSize int
	Logger    *log.Logger
}

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	o.Layout.SetDefaults()
	if o.Style == (render.Style{}) {
		o.Style = render.DefaultStyle()
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.CodeTimeout <= 0 {
		o.CodeTimeout = DefaultCodeTimeout
	}
	if o.PixelSize <= 0 {
		o.PixelSize = qrcode.PixelSize(o.Layout.TileSize)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
