package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/songtiles/pkg/track"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ReviewModel, keys ...string) ReviewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(ReviewModel)
	}
	return m
}

func reviewTracks() track.List {
	return track.NewList([]track.Track{
		{Title: "One", Artist: "A", Year: 1991, URI: "spotify:track:1"},
		{Title: "Two", Artist: "B", Year: 1992, URI: "spotify:track:2"},
		{Title: "Three", Artist: "C", URI: "spotify:track:3"},
	})
}

func titles(l track.List) string {
	var s []string
	for _, t := range l.Tracks() {
		s = append(s, t.Title)
	}
	return strings.Join(s, ",")
}

func TestReviewNavigation(t *testing.T) {
	m := NewReviewModel(reviewTracks())

	m = press(m, "down", "j", "j")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m = press(m, "up", "k", "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 (clamped)", m.Cursor)
	}
}

func TestReviewMoveAndRemove(t *testing.T) {
	m := NewReviewModel(reviewTracks())

	m = press(m, "J")
	if got := titles(m.List); got != "Two,One,Three" {
		t.Errorf("after J: %s", got)
	}
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want to follow the moved track", m.Cursor)
	}

	m = press(m, "j", "d")
	if got := titles(m.List); got != "Two,One" {
		t.Errorf("after d: %s", got)
	}
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1 after removing the last track", m.Cursor)
	}

	m = press(m, "K")
	if got := titles(m.List); got != "One,Two" {
		t.Errorf("after K: %s", got)
	}
}

func TestReviewEditTitle(t *testing.T) {
	m := NewReviewModel(reviewTracks())

	m = press(m, "t")
	if m.Editing != track.FieldTitle {
		t.Fatalf("Editing = %q, want title", m.Editing)
	}
	if m.Input.Value() != "One" {
		t.Errorf("input = %q, want current title", m.Input.Value())
	}

	m.Input.SetValue("  Uno  ")
	m = press(m, "enter")
	if m.Editing != "" {
		t.Error("still editing after enter")
	}
	if got := m.List.At(0).Title; got != "Uno" {
		t.Errorf("title = %q, want Uno", got)
	}
}

func TestReviewEditYearByTyping(t *testing.T) {
	m := NewReviewModel(reviewTracks())

	m = press(m, "j", "j", "y", "1", "9", "9", "9", "enter")
	if got := m.List.At(2).Year; got != 1999 {
		t.Errorf("year = %d, want 1999", got)
	}
}

func TestReviewEditCancel(t *testing.T) {
	m := NewReviewModel(reviewTracks())

	m = press(m, "a", "Z", "esc")
	if m.Editing != "" {
		t.Error("still editing after esc")
	}
	if got := m.List.At(0).Artist; got != "A" {
		t.Errorf("artist = %q, want unchanged", got)
	}
	if m.Quit {
		t.Error("esc while editing should not quit")
	}
}

func TestReviewConfirmAndQuit(t *testing.T) {
	tests := []struct {
		key           string
		wantConfirmed bool
		wantQuit      bool
	}{
		{"enter", true, false},
		{"q", false, true},
		{"esc", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			next, cmd := NewReviewModel(reviewTracks()).Update(key(tt.key))
			m := next.(ReviewModel)
			if m.Confirmed != tt.wantConfirmed || m.Quit != tt.wantQuit {
				t.Errorf("Confirmed = %v, Quit = %v", m.Confirmed, m.Quit)
			}
			if cmd == nil {
				t.Error("expected a quit command")
			}
		})
	}
}

func TestReviewScrolls(t *testing.T) {
	tracks := make([]track.Track, 30)
	for i := range tracks {
		tracks[i] = track.Track{Title: "T", URI: "u"}
	}
	m := NewReviewModel(track.NewList(tracks))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 18})
	m = next.(ReviewModel)
	if m.Height != 10 {
		t.Fatalf("Height = %d, want 10", m.Height)
	}

	for i := 0; i < 15; i++ {
		m = press(m, "down")
	}
	if m.Offset != 6 {
		t.Errorf("Offset = %d, want 6", m.Offset)
	}
}

func TestReviewEmptyList(t *testing.T) {
	m := NewReviewModel(track.NewList(nil))
	m = press(m, "d", "t", "J")
	if m.Editing != "" || m.List.Len() != 0 {
		t.Errorf("unexpected state on empty list: %+v", m)
	}
	if !strings.Contains(m.View(), "no tracks") {
		t.Error("view should report an empty list")
	}
}

func TestReviewViewFlagsOverflow(t *testing.T) {
	m := NewReviewModel(track.NewList([]track.Track{
		{Title: strings.Repeat("x", track.TextLengthLimit+1), URI: "u"},
	}))
	if !strings.Contains(m.View(), "1 fields may overflow") {
		t.Errorf("view missing overflow count:\n%s", m.View())
	}
}
