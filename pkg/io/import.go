package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported track file %q: use .json or .csv", path)
}

type document struct {
	Tracks []track.Track `json:"tracks"`
}

// ReadJSON decodes a track list. Both {"tracks": [...]} and a bare array
// are accepted. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]track.Track, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var tracks []track.Track
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &tracks)
	} else {
		var doc document
		err = json.Unmarshal(data, &doc)
		tracks = doc.Tracks
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode track list")
	}
	return tracks, nil
}

// ReadCSV decodes a track list with a header row. ReadCSV does not close r.
func ReadCSV(r io.Reader) ([]track.Track, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []track.Field{track.FieldTitle, track.FieldURI} {
		if _, ok := cols[string(required)]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "csv header is missing the %q column", required)
		}
	}
	field := func(rec []string, name track.Field) string {
		i, ok := cols[string(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var tracks []track.Track
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv line %d", line)
		}
		year, _ := strconv.Atoi(field(rec, track.FieldYear))
		tracks = append(tracks, track.Track{
			Title:  field(rec, track.FieldTitle),
			Artist: field(rec, track.FieldArtist),
			Year:   max(year, 0),
			URI:    field(rec, track.FieldURI),
		})
	}
	return tracks, nil
}

// Import reads a track file, picking the decoder from the extension.
func Import(path string) ([]track.Track, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "track file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	if format == FormatCSV {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}
