// Package render draws song tiles onto a paginated document.
//
// # Overview
//
// Drawing goes through the [Canvas] interface, the single mutable document
// accumulator. Two canvases are provided:
//
//   - [pdf]: the printable A4 document, built with github.com/signintech/gopdf
//   - [record]: an in-memory log of drawing operations, serialized as JSON
//     and used throughout the tests
//
// A [Renderer] knows how a tile looks: borders, the three stacked text
// fields of the front face, the inset code image of the back face and the
// per-page footer. It does not decide when pages start; that belongs to
// the assembler.
//
//	r := render.NewRenderer(canvas, layout.DefaultOptions(), render.DefaultStyle())
//	canvas.AddPage()
//	r.RenderPageFooter(0)
//	r.RenderFrontTile(opts.Front(0), tracks[0])
//
// # Text
//
// Text is centred horizontally in the tile and never wrapped or truncated.
// Over-long fields are reported upstream by track.Warnings instead.
//
// [pdf]: github.com/matzehuels/songtiles/pkg/render/pdf
// [record]: github.com/matzehuels/songtiles/pkg/render/record
package render
