package spotify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/matzehuels/songtiles/pkg/errors"
)

var (
	idPattern     = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)
	localePattern = regexp.MustCompile(`^intl-[a-z]{2}(-[a-z]{2})?$`)
)

// ExtractPlaylistID returns the 22 character playlist ID referenced by ref.
//
// Accepted forms:
//
//	37i9dQZF1DXcBWIGoYBM5M
//	spotify:playlist:37i9dQZF1DXcBWIGoYBM5M
//	spotify:user:someone:playlist:37i9dQZF1DXcBWIGoYBM5M
//	https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=...
//	https://open.spotify.com/intl-de/playlist/37i9dQZF1DXcBWIGoYBM5M
//	https://open.spotify.com/embed/playlist/37i9dQZF1DXcBWIGoYBM5M
func ExtractPlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New(errors.ErrCodeInvalidPlaylist, "playlist reference is empty")
	}

	if idPattern.MatchString(ref) {
		return ref, nil
	}
	if strings.HasPrefix(ref, "spotify:") {
		parts := strings.Split(ref, ":")
		if len(parts) >= 3 && parts[len(parts)-2] == "playlist" && idPattern.MatchString(parts[len(parts)-1]) {
			return parts[len(parts)-1], nil
		}
		return "", errors.New(errors.ErrCodeInvalidPlaylist, "not a playlist URI: %s", ref)
	}

	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPlaylist, err, "unrecognized playlist reference: %s", ref)
	}
	if host := strings.ToLower(u.Hostname()); host != "open.spotify.com" && host != "play.spotify.com" {
		return "", errors.New(errors.ErrCodeInvalidPlaylist, "not a Spotify link: %s", ref)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) > 0 && localePattern.MatchString(segs[0]) {
		segs = segs[1:]
	}
	if len(segs) > 0 && segs[0] == "embed" {
		segs = segs[1:]
	}
	if len(segs) == 2 && segs[0] == "playlist" && idPattern.MatchString(segs[1]) {
		return segs[1], nil
	}
	return "", errors.New(errors.ErrCodeInvalidPlaylist, "link does not point to a playlist: %s", ref)
}
