package spotify

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/matzehuels/songtiles/pkg/buildinfo"
	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/observability"
	"github.com/matzehuels/songtiles/pkg/track"
)

// Environment variables holding app credentials.
const (
	EnvClientID     = "SPOTIFY_ID"
	EnvClientSecret = "SPOTIFY_SECRET"
)

// PageSize is the number of playlist items requested per call, the API
// maximum.
const PageSize = 100

const httpTimeout = 15 * time.Second

// Credentials identify a registered Spotify app.
type Credentials struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// CredentialsFromEnv reads [EnvClientID] and [EnvClientSecret].
func CredentialsFromEnv() Credentials {
	return Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}
}

// Valid reports whether both fields are set.
func (c Credentials) Valid() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Client fetches playlist tracks.
type Client struct {
	api    *spotify.Client
	logger *log.Logger
}

// Option configures a [Client].
type Option func(*clientConfig)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

// WithHTTPClient replaces the authenticated HTTP client. Credentials are
// not used when this option is given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithLogger sets the logger used for paging progress.
func WithLogger(l *log.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// NewClient returns a client authenticated with creds. The token is
// fetched on first use and refreshed automatically.
func NewClient(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	cfg := clientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	hc := cfg.httpClient
	if hc == nil {
		if !creds.Valid() {
			return nil, errors.New(errors.ErrCodeUnauthorized,
				"Spotify credentials missing: set %s and %s", EnvClientID, EnvClientSecret)
		}
		cc := &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     spotifyauth.TokenURL,
		}
		base := &http.Client{
			Timeout:   httpTimeout,
			Transport: userAgentTransport{next: http.DefaultTransport},
		}
		hc = cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
		hc.Timeout = httpTimeout
	}

	apiOpts := []spotify.ClientOption{spotify.WithRetry(true)}
	if cfg.baseURL != "" {
		apiOpts = append(apiOpts, spotify.WithBaseURL(cfg.baseURL))
	}
	return &Client{api: spotify.New(hc, apiOpts...), logger: cfg.logger}, nil
}

// PlaylistTracks returns the playable tracks of playlist id in playlist
// order.
func (c *Client) PlaylistTracks(ctx context.Context, id string) ([]track.Track, error) {
	if err := errors.ValidateSpotifyID(id); err != nil {
		return nil, err
	}

	var (
		tracks  []track.Track
		skipped int
	)
	for offset := 0; ; offset += PageSize {
		var page *spotify.PlaylistItemPage
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			page, err = c.api.GetPlaylistItems(ctx, spotify.ID(id),
				spotify.Limit(PageSize), spotify.Offset(offset))
			return classify(err)
		})
		if err != nil {
			return nil, mapError(err, id)
		}

		got, n := mapItems(page.Items)
		tracks = append(tracks, got...)
		skipped += n
		c.logger.Debug("fetched playlist page", "playlist", id, "offset", offset, "items", len(page.Items))

		if len(page.Items) < PageSize || page.Next == "" {
			break
		}
	}

	if skipped > 0 {
		c.logger.Info("skipped non-track items", "playlist", id, "count", skipped)
	}
	return tracks, nil
}

// mapItems converts playlist items to tracks and returns how many items
// were skipped.
func mapItems(items []spotify.PlaylistItem) ([]track.Track, int) {
	tracks := make([]track.Track, 0, len(items))
	skipped := 0
	for _, item := range items {
		ft := item.Track.Track
		if item.IsLocal || ft == nil || ft.ID == "" {
			skipped++
			continue
		}
		tracks = append(tracks, mapTrack(ft))
	}
	return tracks, skipped
}

func mapTrack(ft *spotify.FullTrack) track.Track {
	names := make([]string, 0, len(ft.Artists))
	for _, a := range ft.Artists {
		names = append(names, a.Name)
	}
	uri := string(ft.URI)
	if uri == "" {
		uri = "spotify:track:" + string(ft.ID)
	}
	return track.Track{
		Title:  ft.Name,
		Artist: strings.Join(names, ", "),
		Year:   track.ParseYear(ft.Album.ReleaseDate),
		URI:    uri,
	}
}

// classify marks transient API failures for retry.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se spotify.Error
	if stderrors.As(err, &se) && se.Status < http.StatusInternalServerError {
		return err
	}
	return cache.Retryable(err)
}

func mapError(err error, id string) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se spotify.Error
	if stderrors.As(err, &se) {
		switch se.Status {
		case http.StatusNotFound:
			return errors.Wrap(errors.ErrCodePlaylistNotFound, err, "playlist %s not found or not public", id)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Wrap(errors.ErrCodeUnauthorized, err, "Spotify rejected the credentials")
		case http.StatusTooManyRequests:
			return errors.Wrap(errors.ErrCodeRateLimited, err, "Spotify rate limit exceeded")
		}
	}
	var re *oauth2.RetrieveError
	if stderrors.As(err, &re) {
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "Spotify token request failed")
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "fetch playlist %s", id)
}

// userAgentTransport identifies the client and reports every call to the
// HTTP hooks.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
