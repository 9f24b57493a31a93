// Package qrcode renders the scannable code printed on the back of a tile.
//
// The encoder wraps github.com/skip2/go-qrcode with its own quiet zone
// (one module by default rather than the library's four, so the code
// fills more of a small tile) and scales the module bitmap to the
// requested pixel size with golang.org/x/image/draw.
package qrcode

import (
	"context"
	"image"
	"image/color"
	"math"

	goqrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"github.com/matzehuels/songtiles/pkg/errors"
)

// PointsPerCM converts centimetres to PDF points.
const PointsPerCM = 28.35

// DefaultQuietZone is the border, in modules, left around the code.
const DefaultQuietZone = 1

// Generator produces a square code image for a URL.
type Generator interface {
	Generate(ctx context.Context, url string, pixelSize int) (image.Image, error)
}

// GeneratorFunc adapts a function to the [Generator] interface.
type GeneratorFunc func(ctx context.Context, url string, pixelSize int) (image.Image, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, url string, pixelSize int) (image.Image, error) {
	return f(ctx, url, pixelSize)
}

// PixelSize returns the raster resolution for a code printed across size
// centimetres, one pixel per point.
func PixelSize(sizeCM float64) int {
	return int(math.Round(sizeCM * PointsPerCM))
}

// Encoder is the default [Generator].
type Encoder struct {
	// Level is the error-correction level.
	Level goqrcode.RecoveryLevel
	// QuietZone is the white border in modules.
	QuietZone int
}

// NewEncoder returns an encoder with medium error correction and a
// one-module quiet zone.
func NewEncoder() *Encoder {
	return &Encoder{Level: goqrcode.Medium, QuietZone: DefaultQuietZone}
}

// Generate encodes url and returns a square grayscale image at least
// pixelSize pixels wide.
//
// Modules are scaled by the smallest whole number of pixels that reaches
// pixelSize, so edges stay crisp and the quiet zone is exactly QuietZone
// modules. The canvas stretches the image into its box.
func (e *Encoder) Generate(ctx context.Context, url string, pixelSize int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, errors.New(errors.ErrCodeEncode, "empty content")
	}
	if pixelSize <= 0 {
		return nil, errors.New(errors.ErrCodeEncode, "pixel size must be positive, got %d", pixelSize)
	}

	q, err := goqrcode.New(url, e.Level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode %q", url)
	}
	q.DisableBorder = true

	return rasterize(q.Bitmap(), e.QuietZone, pixelSize), nil
}

// rasterize draws a module bitmap with a quiet zone into a square image of
// modules*scale pixels, where scale = ceil(pixelSize/modules).
func rasterize(bitmap [][]bool, quiet, pixelSize int) *image.Gray {
	if quiet < 0 {
		quiet = 0
	}
	modules := len(bitmap) + 2*quiet

	src := image.NewGray(image.Rect(0, 0, modules, modules))
	draw.Draw(src, src.Bounds(), image.White, image.Point{}, draw.Src)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				src.SetGray(x+quiet, y+quiet, color.Gray{Y: 0})
			}
		}
	}

	scale := max((pixelSize+modules-1)/modules, 1)
	side := modules * scale

	dst := image.NewGray(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
