package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/config"
)

func TestCacheDirDefault(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c := New(io.Discard, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = config.Default()
	c.cfg.Cache.Dir = "/tmp/tiles-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/tiles-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = config.Default()
	c.cfg.Cache.Dir = t.TempDir()

	tests := []struct {
		name     string
		noCache  bool
		disabled bool
		wantNull bool
	}{
		{"enabled", false, false, false},
		{"flag", true, false, true},
		{"config", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.cfg.Cache.Disabled = tt.disabled
			store, err := c.newCache(tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			_, isNull := store.(cache.NullCache)
			if isNull != tt.wantNull {
				t.Errorf("newCache() = %T, want null = %v", store, tt.wantNull)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"playlist:a", "playlist:b", "artifact:c"} {
		if err := fc.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := countFiles(dir); n != 3 {
		t.Fatalf("countFiles() = %d, want 3", n)
	}

	cfgPath := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir still exists after clear: %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	cfgPath := writeConfig(t, "[cache]\ndir = \"/srv/tiles\"\n")
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "/srv/tiles" {
		t.Errorf("cache path = %q, want /srv/tiles", got)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
