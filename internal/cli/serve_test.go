package cli

import (
	"context"
	"io"
	"testing"

	"github.com/matzehuels/songtiles/pkg/cache"
	"github.com/matzehuels/songtiles/pkg/config"
)

func TestDisplayHost(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "localhost:8080"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayHost(tt.addr); got != tt.want {
			t.Errorf("displayHost(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestServerCache(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	c.cfg = config.Default()
	c.cfg.Cache.Dir = t.TempDir()

	store, label, err := c.serverCache(ctx, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(cache.NullCache); !ok || label != "disabled" {
		t.Errorf("no-cache: got %T %q", store, label)
	}

	store, label, err = c.serverCache(ctx, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.FileCache); !ok || label != c.cfg.Cache.Dir {
		t.Errorf("file cache: got %T %q", store, label)
	}

	if _, _, err := c.serverCache(ctx, "not-a-redis-url", false); err == nil {
		t.Error("expected an error for an invalid Redis URL")
	}
}
