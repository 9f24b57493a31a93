// Package cli implements the songtiles command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/songtiles/pkg/buildinfo"
	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/config"
	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/integrations/spotify"
	"github.com/matzehuels/songtiles/pkg/layout"
	"github.com/matzehuels/songtiles/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "songtiles"

	// cacheSchema prefixes every cache key; bump it when cached shapes change.
	cacheSchema = "v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Songtiles prints blind-guess music cards from Spotify playlists",
		Long: `Songtiles turns a Spotify playlist into a printable, double-sided sheet of
song tiles: artist, title and year on the front, a QR code linking to the
track on the back. Print duplex (flip on long edge) and cut along the borders.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.registerHooks()
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/songtiles/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.tracksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, key := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", key, "path", cfg.Path)
	}
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// baseOptions returns pipeline options seeded from the configuration.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.config()
	return pipeline.Options{
		Layout:      layout.DefaultOptions(),
		Footer:      cfg.Footer,
		Concurrency: cfg.Concurrency,
		CodeTimeout: cfg.CodeTimeout.Duration,
		Logger:      c.Logger,
	}
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return c.runnerFor(store, c.newSource(ctx)), nil
}

// runnerFor creates a runner over store and src with versioned cache keys.
func (c *CLI) runnerFor(store cache.Cache, src pipeline.Source) *pipeline.Runner {
	return pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cacheSchema), src, c.Logger)
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.config().Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSource returns the Spotify client, or nil when no credentials are
// configured. File input works without one.
func (c *CLI) newSource(ctx context.Context) pipeline.Source {
	client, err := spotify.NewClient(ctx, c.config().Spotify, spotify.WithLogger(c.Logger))
	if err != nil {
		c.Logger.Debug("playlist lookup unavailable", "reason", errors.UserMessage(err))
		return nil
	}
	return client
}

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/songtiles/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
