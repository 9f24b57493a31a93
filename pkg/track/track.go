// Package track defines the track record printed on a song tile and the
// immutable track list the editing surfaces operate on.
package track

import (
	"strconv"
	"strings"
)

// TextLengthLimit is the character count above which a text field may not
// fit on a tile. Fields longer than this are reported by [Track.Warnings];
// the renderer itself never wraps or truncates.
const TextLengthLimit = 65

const (
	trackURIPrefix = "spotify:track:"
	trackURLPrefix = "https://open.spotify.com/track/"
)

// Track is one song. Year 0 means the release year is unknown.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year,omitempty"`
	URI    string `json:"uri"`
}

// URL returns the web URL encoded into the tile's QR code.
// Spotify track URIs are converted to open.spotify.com links; anything
// else is returned unchanged.
func (t Track) URL() string {
	if id, ok := strings.CutPrefix(t.URI, trackURIPrefix); ok {
		return trackURLPrefix + id
	}
	return t.URI
}

// YearText returns the year as printed on the tile, or "" when unknown.
func (t Track) YearText() string {
	if t.Year <= 0 {
		return ""
	}
	return strconv.Itoa(t.Year)
}

// Field identifies an editable text field of a track.
type Field string

// Editable fields.
const (
	FieldTitle  Field = "title"
	FieldArtist Field = "artist"
	FieldYear   Field = "year"
	FieldURI    Field = "uri"
)

// Warning flags a field that is likely to overflow its tile.
type Warning struct {
	Index  int   `json:"index"`  // position of the track in its list
	Field  Field `json:"field"`  // offending field
	Length int   `json:"length"` // character count
}

// Warnings reports the text fields of t longer than [TextLengthLimit].
// The Index of each warning is left at zero; see [List.Warnings].
func (t Track) Warnings() []Warning {
	var ws []Warning
	for _, f := range []struct {
		field Field
		text  string
	}{{FieldTitle, t.Title}, {FieldArtist, t.Artist}} {
		if n := len([]rune(f.text)); n > TextLengthLimit {
			ws = append(ws, Warning{Field: f.field, Length: n})
		}
	}
	return ws
}

// ParseYear extracts a year from a release date such as "1997", "1997-03"
// or "1997-03-14". Unparsable input yields 0.
func ParseYear(releaseDate string) int {
	s := strings.TrimSpace(releaseDate)
	if len(s) < 4 {
		return 0
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil || y <= 0 {
		return 0
	}
	return y
}
