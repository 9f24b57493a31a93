package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxTracks bounds how many tracks a single HTTP request may render.
// Library and CLI callers are not limited.
const MaxTracks = 2000

// ValidateFilename validates an output filename for safety.
// It ensures the filename is a simple basename usable in a
// Content-Disposition header.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}
	if len(filename) > 255 {
		return New(ErrCodeInvalidPath, "filename too long (max 255 characters)")
	}
	if strings.ContainsAny(filename, "/\\\"") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators or quotes")
	}
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}
	return nil
}

// ValidateTrackCount rejects negative or oversized request track counts.
// Zero tracks is valid: it produces the minimal document.
func ValidateTrackCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "track count cannot be negative")
	}
	if n > MaxTracks {
		return New(ErrCodeInvalidInput, "too many tracks: %d (max %d)", n, MaxTracks)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// spotifyIDRegex matches a base62 Spotify object ID.
var spotifyIDRegex = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)

// ValidateSpotifyID validates a bare Spotify object ID.
func ValidateSpotifyID(id string) error {
	if !spotifyIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPlaylist, "invalid Spotify ID: %q", id)
	}
	return nil
}
