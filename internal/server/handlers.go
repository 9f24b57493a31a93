package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/songtiles/pkg/buildinfo"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/pipeline"
	"github.com/matzehuels/songtiles/pkg/track"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type tracksResponse struct {
	Tracks   []track.Track   `json:"tracks"`
	Warnings []track.Warning `json:"warnings"`
	Cached   bool            `json:"cached"`
}

// tilesRequest is the body of POST /api/tiles.
type tilesRequest struct {
	Tracks []track.Track `json:"tracks"`
	Format string        `json:"format,omitempty"`
	Footer *string       `json:"footer,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handlePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	opts, err := s.playlistOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, hit, err := s.runner.FetchWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	warnings := list.Warnings()
	if warnings == nil {
		warnings = []track.Warning{}
	}
	writeJSON(w, http.StatusOK, tracksResponse{
		Tracks:   list.Tracks(),
		Warnings: warnings,
		Cached:   hit,
	})
}

func (s *Server) handlePlaylistTiles(w http.ResponseWriter, r *http.Request) {
	opts, err := s.playlistOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts.Format = q.Get("format")
	if q.Has("footer") {
		footer := q.Get("footer")
		opts.Footer = &footer
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, r, err)
		return
	}
	list, err := s.runner.Fetch(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateTrackCount(list.Len()); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Generate(r.Context(), list, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, res.ContentType, res.Filename, res.Artifact)
}

func (s *Server) handleTiles(w http.ResponseWriter, r *http.Request) {
	var req tilesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, errBadRequest("invalid request body: %v", err))
		return
	}
	if err := errors.ValidateTrackCount(len(req.Tracks)); err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.defaults
	opts.Format = req.Format
	if req.Footer != nil {
		opts.Footer = req.Footer
	}

	res, err := s.runner.Generate(r.Context(), track.NewList(req.Tracks), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, res.ContentType, res.Filename, res.Artifact)
}

// playlistOptions starts from the server defaults and reads the playlist
// reference and refresh flag from the request.
func (s *Server) playlistOptions(r *http.Request) (pipeline.Options, error) {
	ref, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return pipeline.Options{}, errBadRequest("malformed playlist reference")
	}
	opts := s.defaults
	opts.Playlist = ref
	opts.Input = ""
	opts.Refresh, _ = strconv.ParseBool(r.URL.Query().Get("refresh"))
	return opts, nil
}
