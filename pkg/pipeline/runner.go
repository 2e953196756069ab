package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textsvg/pkg/cache"
	"github.com/matzehuels/textsvg/pkg/observability"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// Runner renders artifacts through a cache. The CLI and the HTTP server
// share it. A Runner holds no per-request state and may be used from many
// goroutines at once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner fills nil arguments with a null cache, the default keyer and
// the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLArtifact}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute returns every requested format. Cached artifacts are used only
// when all formats are present and opts.Refresh is unset; otherwise every
// format is rendered again and written back.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	keys := r.keys(opts)

	var (
		artifacts map[string][]byte
		hit       bool
		err       error
	)
	if !opts.Refresh {
		artifacts, hit = r.lookup(ctx, opts, keys)
	}
	if !hit {
		if artifacts, err = r.render(ctx, opts); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		r.store(ctx, opts.Logger, keys, artifacts)
	}

	result := &Result{
		Artifacts: artifacts,
		Placement: svgtext.Place(opts.Style),
		Stats:     Stats{RenderTime: time.Since(start), Bytes: totalSize(artifacts)},
		CacheInfo: CacheInfo{RenderHit: hit},
	}
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"bytes", result.Stats.Bytes,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

func (r *Runner) keys(opts Options) map[string]string {
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(opts.Text, opts.ArtifactKeyOpts(format))
	}
	return keys
}

// lookup reports a hit only if every format is cached. It stops at the
// first miss.
func (r *Runner) lookup(ctx context.Context, opts Options, keys map[string]string) (map[string][]byte, bool) {
	hooks := observability.Cache()
	found := make(map[string][]byte, len(keys))
	for _, format := range opts.Formats {
		data, ok, err := r.Cache.Get(ctx, keys[format])
		if err != nil {
			opts.Logger.Debug("cache read failed", "format", format, "error", err)
		}
		event := observability.CacheEvent{Format: format, Key: keys[format], Bytes: len(data)}
		if err != nil || !ok {
			hooks.OnCacheMiss(ctx, event)
			return nil, false
		}
		hooks.OnCacheHit(ctx, event)
		found[format] = data
	}
	return found, true
}

// render runs the uncached pipeline between the render hooks.
func (r *Runner) render(ctx context.Context, opts Options) (map[string][]byte, error) {
	hooks := observability.Render()
	event := observability.RenderEvent{TextLen: len(opts.Text), Formats: opts.Formats}
	hooks.OnRenderStart(ctx, event)

	start := time.Now()
	artifacts, err := Render(ctx, opts)
	event.Bytes = totalSize(artifacts)
	event.Duration = time.Since(start)
	event.Err = err
	hooks.OnRenderComplete(ctx, event)
	return artifacts, err
}

// store writes artifacts back. Write failures are logged, not returned:
// the caller already has its output.
func (r *Runner) store(ctx context.Context, logger *log.Logger, keys map[string]string, artifacts map[string][]byte) {
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, r.TTL); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, observability.CacheEvent{Format: format, Key: keys[format], Bytes: len(data)})
	}
}

func totalSize(artifacts map[string][]byte) int {
	n := 0
	for _, data := range artifacts {
		n += len(data)
	}
	return n
}
