package render

// DefaultFooter is stamped at the bottom of every page.
const DefaultFooter = "generate.blindsongscanner.com"

// Style holds the typographic constants of a tile. Offsets are fractions
// of the tile size measured from the tile's top edge; lengths are in
// layout units.
type Style struct {
	BorderWidth float64

	ArtistFont Font
	TitleFont  Font
	YearFont   Font
	FooterFont Font

	ArtistOffset float64
	TitleOffset  float64
	YearOffset   float64

	// TextPadding is subtracted from the tile width to get the nominal
	// text width.
	TextPadding float64
	// ImageInset is the gap between the border and the code image.
	ImageInset float64

	Footer string
	// FooterInset is the distance of the footer's centre line from the
	// bottom of the page.
	FooterInset float64
}

// DefaultStyle returns the standard tile look: thin black borders, artist
// at 12pt, title at 14pt and year at 18pt stacked at one sixth, one half
// and five sixths of the tile, and a 0.8 inset around the code image.
func DefaultStyle() Style {
	return Style{
		BorderWidth:  0.01,
		ArtistFont:   Font{Size: 12},
		TitleFont:    Font{Size: 14, Bold: true},
		YearFont:     Font{Size: 18, Bold: true},
		FooterFont:   Font{Size: 8, Gray: 100},
		ArtistOffset: 1.0 / 6,
		TitleOffset:  1.0 / 2,
		YearOffset:   5.0 / 6,
		TextPadding:  0.5,
		ImageInset:   0.8,
		Footer:       DefaultFooter,
		FooterInset:  0.5,
	}
}
