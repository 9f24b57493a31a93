package errors

import (
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid pdf", "blind-song-scanner-tiles.pdf", false},
		{"valid with spaces", "party mix.pdf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "foo/bar.pdf", true},
		{"backslash", "foo\\bar.pdf", true},
		{"quote", "foo\".pdf", true},
		{"hidden", ".tiles.pdf", true},
		{"newline", "foo\nbar.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateTrackCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxTracks, false},
		{MaxTracks + 1, true},
		{-1, true},
	}

	for _, tt := range tests {
		err := ValidateTrackCount(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTrackCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", false},
		{"http://example.com", false},
		{"", true},
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", true},
		{"javascript:alert(1)", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateSpotifyID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"37i9dQZF1DXcBWIGoYBM5M", false},
		{"short", true},
		{"37i9dQZF1DXcBWIGoYBM5M1", true},
		{"37i9dQZF1DXcBWIGoYBM-M", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateSpotifyID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpotifyID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
