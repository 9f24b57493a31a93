package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/songtiles/pkg/observability"
)

// logHooks reports pipeline, cache and API events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFetchStart(_ context.Context, source, ref string) {
	h.logger.Debug("fetch started", "source", source, "ref", ref)
}

func (h logHooks) OnFetchComplete(_ context.Context, source, ref string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "source", source, "ref", ref, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch done", "source", source, "tracks", n, "duration", d)
}

func (h logHooks) OnGenerateStart(_ context.Context, format string, n int) {
	h.logger.Debug("render started", "format", format, "tracks", n)
}

func (h logHooks) OnGenerateComplete(_ context.Context, format string, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render done", "format", format, "pages", pages, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("api request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, _, path string, status int, d time.Duration) {
	h.logger.Debug("api response", "method", method, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, _, path string, err error) {
	h.logger.Debug("api error", "method", method, "path", path, "err", err)
}

// registerHooks routes observability events to the CLI logger.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
