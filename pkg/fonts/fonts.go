// Package fonts provides the font files embedded into generated documents.
//
// The Go fonts from golang.org/x/image are compiled into the binary, so
// document generation needs no system fonts and renders identically on
// every machine.
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Family names registered with the PDF writer.
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

// Face is a named TrueType font.
type Face struct {
	Name string
	TTF  []byte
}

// All returns every embedded face in registration order.
func All() []Face {
	return []Face{
		{Name: Regular, TTF: goregular.TTF},
		{Name: Bold, TTF: gobold.TTF},
	}
}
