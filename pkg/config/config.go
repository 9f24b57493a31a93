// Package config loads settings from an optional TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, command
// line flags (applied by the caller), and for credentials the environment.
//
//	# ~/.config/songtiles/config.toml
//	footer = "my-party.example.com"
//	concurrency = 4
//	code_timeout = "5s"
//
//	[spotify]
//	client_id = "..."
//	client_secret = "..."
//
//	[server]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/songtiles/pkg/errors"
	"github.com/matzehuels/songtiles/pkg/integrations/spotify"
	"github.com/matzehuels/songtiles/pkg/render"
)

// EnvRedisURL overrides [Server.RedisURL].
const EnvRedisURL = "REDIS_URL"

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Duration is a time.Duration written as a string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Cache configures the lookup cache.
type Cache struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// Server configures `songtiles serve`.
type Server struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// Config is the merged configuration.
type Config struct {
	// Footer replaces the page footer. Unset keeps the default; an empty
	// string removes the footer.
	Footer      *string             `toml:"footer"`
	Concurrency int                 `toml:"concurrency"`
	CodeTimeout Duration            `toml:"code_timeout"`
	Cache       Cache               `toml:"cache"`
	Spotify     spotify.Credentials `toml:"spotify"`
	Server      Server              `toml:"server"`

	// Path is the file the config was read from, if any.
	Path string `toml:"-"`
	// Unknown lists keys in the file that matched no setting.
	Unknown []string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns config.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "songtiles", "config.toml"), nil
}

// Load reads the file at path over the defaults and applies the
// environment. An empty path tries [DefaultPath] and tolerates its
// absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case err == nil:
			cfg.Path = path
			for _, key := range md.Undecoded() {
				cfg.Unknown = append(cfg.Unknown, key.String())
			}
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides credentials and the Redis URL from the environment.
func (c *Config) ApplyEnv() {
	env := spotify.CredentialsFromEnv()
	if env.ClientID != "" {
		c.Spotify.ClientID = env.ClientID
	}
	if env.ClientSecret != "" {
		c.Spotify.ClientSecret = env.ClientSecret
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Server.RedisURL = v
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency cannot be negative")
	}
	if c.CodeTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "code_timeout cannot be negative")
	}
	return nil
}

// FooterText returns the footer to print.
func (c *Config) FooterText() string {
	if c.Footer == nil {
		return render.DefaultFooter
	}
	return *c.Footer
}
