package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/pipeline"
	"github.com/matzehuels/songtiles/pkg/qrcode"
	"github.com/matzehuels/songtiles/pkg/track"
)

const testID = "37i9dQZF1DXcBWIGoYBM5M"

type fakeSource map[string][]track.Track

func (f fakeSource) PlaylistTracks(ctx context.Context, id string) ([]track.Track, error) {
	tracks, ok := f[id]
	if !ok {
		return nil, errors.New(errors.ErrCodePlaylistNotFound, "playlist %s not found", id)
	}
	return tracks, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	src := fakeSource{testID: {
		{Title: "Heroes", Artist: "David Bowie", Year: 1977, URI: "spotify:track:7Jh1bpe76CNTCgdgAdBw4Z"},
		{Title: strings.Repeat("long ", 20), Artist: "Someone", URI: "spotify:track:0000000000000000000001"},
	}}
	runner := pipeline.NewRunner(nil, nil, src, logger)
	runner.Generator = qrcode.GeneratorFunc(func(ctx context.Context, url string, size int) (image.Image, error) {
		return image.NewGray(image.Rect(0, 0, size, size)), nil
	})

	srv := httptest.NewServer(New(runner, pipeline.Options{}, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("response should carry a request ID")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	const id = "0b4e7c1e-7d1f-4a54-9a57-3f3f5c0d2a11"

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req.Header.Set(HeaderRequestID, "not a uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got == "not a uuid" || got == "" {
		t.Errorf("malformed request ID should be replaced, got %q", got)
	}
}

func TestPlaylistTracks(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/playlists/spotify:playlist:" + testID + "/tracks")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body tracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tracks) != 2 || body.Tracks[0].Title != "Heroes" {
		t.Errorf("tracks = %+v", body.Tracks)
	}
	if len(body.Warnings) != 1 || body.Warnings[0].Index != 1 {
		t.Errorf("warnings = %+v", body.Warnings)
	}
}

func TestPlaylistErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"unknown playlist", "/api/playlists/0000000000000000000000/tracks", http.StatusNotFound, errors.ErrCodePlaylistNotFound},
		{"invalid reference", "/api/playlists/nope/tracks", http.StatusBadRequest, errors.ErrCodeInvalidPlaylist},
		{"bad format", "/api/playlists/" + testID + "/tiles?format=svg", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"no route", "/api/nothing", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.code)
			}
			if body.RequestID == "" {
				t.Error("error body should carry the request ID")
			}
		})
	}
}

func TestPlaylistTilesPDF(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/playlists/" + testID + "/tiles")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "attachment; filename=blind-song-scanner-tiles.pdf" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestPostTiles(t *testing.T) {
	srv := newTestServer(t)
	body := `{"format": "json", "footer": "", "tracks": [
		{"title": "Heroes", "artist": "David Bowie", "year": 1977, "uri": "spotify:track:7Jh1bpe76CNTCgdgAdBw4Z"}
	]}`
	resp, err := http.Post(srv.URL+"/api/tiles", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Pages []struct {
			Ops []struct {
				Kind string `json:"kind"`
				Text string `json:"text"`
			} `json:"ops"`
		} `json:"pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	for _, op := range doc.Pages[0].Ops {
		if op.Text == "generate.blindsongscanner.com" {
			t.Error("empty footer should remove the footer")
		}
	}
}

func TestPostTilesTooManyTracks(t *testing.T) {
	srv := newTestServer(t)
	tracks := make([]track.Track, errors.MaxTracks+1)
	for i := range tracks {
		tracks[i] = track.Track{Title: "Heroes", URI: "spotify:track:7Jh1bpe76CNTCgdgAdBw4Z"}
	}
	body, err := json.Marshal(tilesRequest{Tracks: tracks, Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/api/tiles", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := decodeError(t, resp).Error.Code; got != errors.ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q", got, errors.ErrCodeInvalidInput)
	}
}

func TestPostTilesBadBody(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{`{"tracks": [`, `{"unknown": 1}`} {
		resp, err := http.Post(srv.URL+"/api/tiles", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
		resp.Body.Close()
	}
}
