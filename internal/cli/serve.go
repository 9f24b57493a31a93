package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/songtiles/internal/server"
	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/config"
)

// redisPrefix namespaces server keys in a shared Redis instance.
const redisPrefix = appName + ":"

type serveFlags struct {
	addr     string
	redisURL string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve track lookup and tile generation over HTTP",
		Long: `Serve the tile generator as an HTTP API.

Routes:
  GET  /healthz
  GET  /api/playlists/{id}/tracks
  GET  /api/playlists/{id}/tiles?format=pdf|json&footer=...&refresh=true
  POST /api/tiles

Results are cached in Redis when a URL is given with --redis-url or
$REDIS_URL, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.Flags().Changed("addr"), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for the shared cache (default: $"+config.EnvRedisURL+")")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addrSet bool, flags serveFlags) error {
	cfg := c.config()
	addr := cfg.Server.Addr
	if addrSet || addr == "" {
		addr = flags.addr
	}
	redisURL := cfg.Server.RedisURL
	if flags.redisURL != "" {
		redisURL = flags.redisURL
	}

	store, backend, err := c.serverCache(ctx, redisURL, flags.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	source := c.newSource(ctx)
	if source == nil {
		printWarning("Spotify credentials missing: only POST /api/tiles is available")
	}
	runner := c.runnerFor(store, source)

	printSuccess("Listening on %s", addr)
	printKeyValue("Cache", backend)
	printKeyValue("Health", "http://"+displayHost(addr)+"/healthz")

	return server.New(runner, c.baseOptions(), c.Logger).ListenAndServe(ctx, addr)
}

// serverCache opens Redis when a URL is configured and the file cache
// otherwise. It also returns a label for the chosen backend.
func (c *CLI) serverCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, string, error) {
	if noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if redisURL == "" {
		store, err := c.newCache(false)
		if err != nil {
			return nil, "", err
		}
		if fc, ok := store.(*cache.FileCache); ok {
			return store, fc.Dir(), nil
		}
		return store, "disabled", nil
	}
	store, err := cache.NewRedisCache(ctx, redisURL, redisPrefix)
	if err != nil {
		return nil, "", err
	}
	return store, "redis", nil
}

// displayHost turns a listen address such as ":8080" into a dialable host.
func displayHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
