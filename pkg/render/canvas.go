package render

import (
	"image"
	"io"
)

// Font selects the face, size and grey level of a line of text.
type Font struct {
	Size float64 `json:"size"` // points
	Bold bool    `json:"bold,omitempty"`
	Gray uint8   `json:"gray,omitempty"` // 0 is black
}

// Canvas is a paginated drawing surface. Lengths are in layout units
// (centimetres); font sizes are in points. A Canvas is not safe for
// concurrent use.
type Canvas interface {
	// AddPage starts a new page; subsequent drawing goes there.
	AddPage()
	// PageCount returns the number of pages started so far.
	PageCount() int
	// StrokeRect outlines a rectangle with its top-left corner at (x, y).
	StrokeRect(x, y, w, h, lineWidth float64) error
	// Text draws a single line centred on cx, vertically centred on cy.
	// maxWidth is informational; text is never wrapped.
	Text(s string, cx, cy, maxWidth float64, font Font) error
	// Image draws img scaled into the w×h box at (x, y).
	Image(img image.Image, x, y, w, h float64) error
	// Finish serializes the document to w. The canvas must not be used
	// afterwards.
	Finish(w io.Writer) error
}
