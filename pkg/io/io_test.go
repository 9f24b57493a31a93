package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/track"
)

var sample = []track.Track{
	{Title: "Heroes", Artist: "David Bowie", Year: 1977, URI: "spotify:track:7Jh1bpe76CNTCgdgAdBw4Z"},
	{Title: "Song, With Comma", Artist: "A \"Quoted\" Band", URI: "spotify:track:0000000000000000000001"},
}

func TestReadJSONForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"object", `{"tracks": [{"title": "a", "uri": "u"}]}`, 1},
		{"bare array", `[{"title": "a"}, {"title": "b"}]`, 2},
		{"leading whitespace", "\n  [ ]", 0},
		{"empty object", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ReadJSON() returned %d tracks, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"tracks": [`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"tracks"`) {
		t.Errorf("WriteJSON output lacks tracks key: %s", buf.String())
	}
	if strings.Contains(buf.String(), `"year": 0`) {
		t.Error("unknown year should be omitted")
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(sample) || got[0] != sample[0] || got[1] != sample[1] {
		t.Errorf("round trip = %+v, want %+v", got, sample)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"tracks": []`) {
		t.Errorf("WriteJSON(nil) = %s, want empty array", buf.String())
	}
}

func TestReadCSV(t *testing.T) {
	input := "uri,Title,year\n" +
		"spotify:track:a, Heroes ,1977\n" +
		"spotify:track:b,Unknown,\n" +
		"spotify:track:c,Bad Year,19x7\n"

	got, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	want := []track.Track{
		{Title: "Heroes", Year: 1977, URI: "spotify:track:a"},
		{Title: "Unknown", URI: "spotify:track:b"},
		{Title: "Bad Year", URI: "spotify:track:c"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("track %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadCSVLargeList(t *testing.T) {
	var b strings.Builder
	b.WriteString("title,uri\n")
	const n = errors.MaxTracks + 1
	for range n {
		b.WriteString("Heroes,spotify:track:7Jh1bpe76CNTCgdgAdBw4Z\n")
	}
	got, err := ReadCSV(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(got) != n {
		t.Errorf("got %d tracks, want %d", len(got), n)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("title,artist\nHeroes,Bowie\n"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	if err != nil || len(got) != 0 {
		t.Errorf("ReadCSV(\"\") = %v, %v", got, err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(sample, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "title,artist,year,uri\n") {
		t.Errorf("WriteCSV header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range sample {
		if got[i] != sample[i] {
			t.Errorf("track %d = %+v, want %+v", i, got[i], sample[i])
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"tracks.json", FormatJSON, false},
		{"dir/Tracks.CSV", FormatCSV, false},
		{"tracks.txt", "", true},
		{"tracks", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tracks.json", "tracks.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(sample, path); err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if len(got) != len(sample) || got[1] != sample[1] {
				t.Errorf("Import() = %+v", got)
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
