// Package io reads and writes track lists as JSON or CSV.
//
// Saving a fetched playlist lets it be corrected by hand (shortened
// titles, fixed years) and rendered later without network access.
//
// # JSON
//
// [WriteJSON] produces an object with a "tracks" array. [ReadJSON] also
// accepts a bare array:
//
//	{
//	  "tracks": [
//	    {"title": "Heroes", "artist": "David Bowie", "year": 1977,
//	     "uri": "spotify:track:7Jh1bpe76CNTCgdgAdBw4Z"}
//	  ]
//	}
//
// # CSV
//
// The first row is a header naming the columns. Columns may appear in any
// order; "title" and "uri" are required, "artist" and "year" optional:
//
//	title,artist,year,uri
//	Heroes,David Bowie,1977,spotify:track:7Jh1bpe76CNTCgdgAdBw4Z
//
// An empty or non-numeric year reads as unknown.
package io
