// Package spotify looks up the tracks of a Spotify playlist.
//
// The client authenticates with the client-credentials flow
// (golang.org/x/oauth2/clientcredentials), so only public and
// link-shared playlists are reachable, and pages through the playlist
// with github.com/zmb3/spotify/v2. Each playable item becomes a
// [track.Track]:
//
//	title   track name
//	artist  artist names joined with ", "
//	year    first four digits of the album release date
//	uri     spotify:track:<id>
//
// Podcast episodes, local files and removed tracks are skipped.
//
// Playlist references are normalized by [ExtractPlaylistID], which
// accepts URIs, share links and bare IDs.
//
// [track.Track]: github.com/matzehuels/songtiles/pkg/track.Track
package spotify
