package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/track"
)

var csvHeader = []string{
	string(track.FieldTitle),
	string(track.FieldArtist),
	string(track.FieldYear),
	string(track.FieldURI),
}

// WriteJSON encodes tracks as an indented {"tracks": [...]} document.
func WriteJSON(tracks []track.Track, w io.Writer) error {
	if tracks == nil {
		tracks = []track.Track{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Tracks: tracks}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode track list")
	}
	return nil
}

// WriteCSV encodes tracks with a title,artist,year,uri header. Unknown
// years are written as empty cells.
func WriteCSV(tracks []track.Track, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tracks {
		year := ""
		if t.Year > 0 {
			year = strconv.Itoa(t.Year)
		}
		if err := cw.Write([]string{t.Title, t.Artist, year, t.URI}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes tracks to path, picking the encoder from the extension.
func Export(tracks []track.Track, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := errors.ValidateFilename(filepath.Base(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}

	if format == FormatCSV {
		err = WriteCSV(tracks, f)
	} else {
		err = WriteJSON(tracks, f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
