// Package observability lets callers watch renders, cache traffic and HTTP
// requests without the pipeline depending on a metrics or tracing backend.
//
// Each event category has an interface, a no-op default, and a process-wide
// registration. The pipeline and the server read the registered hooks on
// every event, so hooks may be swapped at any time:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetAll(hooks)
//	defer observability.Reset()
//
// [LogHooks] is the implementation the CLI installs; it logs each event at
// debug level.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// RenderEvent describes one render of the pipeline. The start event carries
// only TextLen and Formats.
type RenderEvent struct {
	TextLen  int
	Formats  []string
	Bytes    int
	Duration time.Duration
	Err      error
}

// CacheEvent describes one cache lookup or write of a single artifact.
type CacheEvent struct {
	Format string
	Key    string
	Bytes  int
}

// HTTPEvent describes one request. The request event has no Status or
// Duration.
type HTTPEvent struct {
	Method    string
	Path      string
	RequestID string
	Status    int
	Duration  time.Duration
}

// RenderHooks receives pipeline render events.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, e RenderEvent)
	OnRenderComplete(ctx context.Context, e RenderEvent)
}

// CacheHooks receives artifact cache events.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, e CacheEvent)
	OnCacheMiss(ctx context.Context, e CacheEvent)
	OnCacheSet(ctx context.Context, e CacheEvent)
}

// HTTPHooks receives server request events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, e HTTPEvent)
	OnResponse(ctx context.Context, e HTTPEvent)
}

// Hooks implements every category.
type Hooks interface {
	RenderHooks
	CacheHooks
	HTTPHooks
}

// Noop implements Hooks and ignores every event. Embed it to implement a
// subset.
type Noop struct{}

func (Noop) OnRenderStart(context.Context, RenderEvent)    {}
func (Noop) OnRenderComplete(context.Context, RenderEvent) {}
func (Noop) OnCacheHit(context.Context, CacheEvent)        {}
func (Noop) OnCacheMiss(context.Context, CacheEvent)       {}
func (Noop) OnCacheSet(context.Context, CacheEvent)        {}
func (Noop) OnRequest(context.Context, HTTPEvent)          {}
func (Noop) OnResponse(context.Context, HTTPEvent)         {}

// registry stores one hook value behind an atomic pointer.
type registry[T any] struct {
	p   atomic.Pointer[T]
	def T
}

func (r *registry[T]) get() T {
	if h := r.p.Load(); h != nil {
		return *h
	}
	return r.def
}

func (r *registry[T]) set(h T) { r.p.Store(&h) }
func (r *registry[T]) reset()  { r.p.Store(nil) }

var (
	renderHooks = &registry[RenderHooks]{def: Noop{}}
	cacheHooks  = &registry[CacheHooks]{def: Noop{}}
	httpHooks   = &registry[HTTPHooks]{def: Noop{}}
)

// SetRenderHooks registers render hooks. nil is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderHooks.set(h)
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.set(h)
	}
}

// SetAll registers h for every category.
func SetAll(h Hooks) {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// Render returns the registered render hooks.
func Render() RenderHooks { return renderHooks.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op defaults.
func Reset() {
	renderHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
