package track

import "strconv"

// List is an ordered, immutable sequence of tracks. Every edit returns a
// new List and leaves the receiver untouched, so a List can be shared
// freely between the editing UI and a running document generation.
type List struct {
	tracks []Track
}

// NewList copies tracks into a new List.
func NewList(tracks []Track) List {
	return List{tracks: append([]Track(nil), tracks...)}
}

// Len returns the number of tracks.
func (l List) Len() int { return len(l.tracks) }

// At returns the track at index i. It panics if i is out of range.
func (l List) At(i int) Track { return l.tracks[i] }

// Tracks returns a copy of the underlying tracks.
func (l List) Tracks() []Track {
	return append([]Track(nil), l.tracks...)
}

// With returns a new List with the track at index i replaced by t.
// Out-of-range indices return l unchanged.
func (l List) With(i int, t Track) List {
	if i < 0 || i >= len(l.tracks) {
		return l
	}
	next := l.Tracks()
	next[i] = t
	return List{tracks: next}
}

// WithTitle returns a new List with the title of track i set.
func (l List) WithTitle(i int, title string) List {
	return l.update(i, func(t *Track) { t.Title = title })
}

// WithArtist returns a new List with the artist of track i set.
func (l List) WithArtist(i int, artist string) List {
	return l.update(i, func(t *Track) { t.Artist = artist })
}

// WithYear returns a new List with the year of track i set.
func (l List) WithYear(i int, year int) List {
	return l.update(i, func(t *Track) { t.Year = year })
}

// WithURI returns a new List with the URI of track i set.
func (l List) WithURI(i int, uri string) List {
	return l.update(i, func(t *Track) { t.URI = uri })
}

// WithField sets a field from its text form, as typed into an editor.
// A year that is not a number clears the year.
func (l List) WithField(i int, f Field, value string) List {
	switch f {
	case FieldTitle:
		return l.WithTitle(i, value)
	case FieldArtist:
		return l.WithArtist(i, value)
	case FieldYear:
		y, err := strconv.Atoi(value)
		if err != nil || y < 0 {
			y = 0
		}
		return l.WithYear(i, y)
	case FieldURI:
		return l.WithURI(i, value)
	}
	return l
}

// Remove returns a new List without track i.
func (l List) Remove(i int) List {
	if i < 0 || i >= len(l.tracks) {
		return l
	}
	next := make([]Track, 0, len(l.tracks)-1)
	next = append(next, l.tracks[:i]...)
	next = append(next, l.tracks[i+1:]...)
	return List{tracks: next}
}

// Move returns a new List with track from moved to index to.
func (l List) Move(from, to int) List {
	n := len(l.tracks)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return l
	}
	t := l.tracks[from]
	next := l.Remove(from).Tracks()
	next = append(next[:to], append([]Track{t}, next[to:]...)...)
	return List{tracks: next}
}

// Warnings returns the overflow warnings for every track, in list order.
func (l List) Warnings() []Warning {
	var ws []Warning
	for i, t := range l.tracks {
		for _, w := range t.Warnings() {
			w.Index = i
			ws = append(ws, w)
		}
	}
	return ws
}

func (l List) update(i int, fn func(*Track)) List {
	if i < 0 || i >= len(l.tracks) {
		return l
	}
	t := l.tracks[i]
	fn(&t)
	return l.With(i, t)
}
