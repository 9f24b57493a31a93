// Package pkg provides the core libraries for Songtiles.
//
// # Overview
//
// Songtiles turns a playlist into a printable, double-sided sheet of song
// tiles. The front of every tile shows artist, year and title; the back
// carries a QR code linking to the track. Backs are mirrored horizontally
// so that duplex printing flipped on the long edge lines each back up with
// its front.
//
// # Architecture
//
// The typical data flow:
//
//	Spotify playlist / track file
//	         ↓
//	    [integrations/spotify] or [io] (load tracks)
//	         ↓
//	    [track] (editable list, overflow warnings)
//	         ↓
//	    [assemble] (pages, placement, concurrent QR encoding)
//	         ↓
//	    [render] onto [render/pdf] or [render/record]
//	         ↓
//	    PDF or JSON document
//
// [pipeline] wires these stages together behind a cache and is shared by
// the CLI and the HTTP server.
//
// # Main Packages
//
// [track] - Track model, immutable edit operations and text overflow checks.
//
// [layout] - Sheet geometry: grid placement, mirrored backs and page groups.
//
// [qrcode] - QR code generation for track links.
//
// [render] - Tile drawing against an abstract canvas, with a PDF sink
// ([render/pdf]) and a recording sink used for JSON output and tests
// ([render/record]).
//
// [assemble] - Page assembly: fronts page then backs page for every group
// of tiles, with per-code timeouts and bounded concurrency.
//
// [integrations/spotify] - Playlist lookup through the Spotify Web API.
//
// [io] - JSON and CSV track files.
//
// [cache] - File and Redis caches for playlists and documents.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by CLI and API.
//
// # Quick Start
//
//	tracks, _ := io.Import("tracks.csv")
//	canvas, _ := pdf.New(21, 29.7)
//	opts := assemble.Options{Layout: layout.DefaultOptions(), Style: render.DefaultStyle()}
//	stats, err := assemble.New(nil, opts).Build(ctx, tracks, canvas, out)
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include Redis integration tests
package pkg
