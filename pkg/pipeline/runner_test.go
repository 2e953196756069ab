package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textsvg/pkg/cache"
	"github.com/matzehuels/textsvg/pkg/errors"
	"github.com/matzehuels/textsvg/pkg/observability"
	"github.com/matzehuels/textsvg/pkg/render"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// recordingHooks counts render and cache events.
type recordingHooks struct {
	observability.Noop
	mu       sync.Mutex
	starts   int
	finishes int
	hits     int
	misses   int
}

func (h *recordingHooks) OnRenderStart(context.Context, observability.RenderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnRenderComplete(context.Context, observability.RenderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finishes++
}

func (h *recordingHooks) OnCacheHit(context.Context, observability.CacheEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, observability.CacheEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func withHooks(t *testing.T) *recordingHooks {
	t.Helper()
	h := &recordingHooks{}
	observability.SetAll(h)
	t.Cleanup(observability.Reset)
	return h
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderFormats(t *testing.T) {
	opts := Options{
		Text:    "ZALA13",
		Style:   svgtext.Options{Width: 400, Height: 200, FontSize: 60},
		Formats: []string{FormatSVG, FormatPNG, FormatJSON},
	}
	require.NoError(t, opts.ValidateAndSetDefaults())

	artifacts, err := Render(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	assert.Equal(t, svgtext.Render(opts.Text, opts.Style), string(artifacts[FormatSVG]))
	assert.True(t, bytes.HasPrefix(artifacts[FormatPNG], pngMagic), "png artifact must be a PNG")

	var doc struct {
		Text     string  `json:"text"`
		Width    float64 `json:"width"`
		FontSize float64 `json:"fontSize"`
		Fill     string  `json:"fill"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}
	require.NoError(t, json.Unmarshal(artifacts[FormatJSON], &doc))
	assert.Equal(t, "ZALA13", doc.Text)
	assert.Equal(t, 400.0, doc.Width)
	assert.Equal(t, 60.0, doc.FontSize)
	assert.Equal(t, "#000000", doc.Fill)
	assert.Equal(t, 200.0, doc.X)
	assert.InDelta(t, 100+60/3.5, doc.Y, 1e-9)
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	opts := Options{Text: "pdf", Formats: []string{FormatPDF}}
	require.NoError(t, opts.ValidateAndSetDefaults())

	artifacts, err := Render(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifacts[FormatPDF], []byte("%PDF")))
}

func TestEveryFormatHasRenderer(t *testing.T) {
	for _, f := range Formats {
		assert.Contains(t, renderers, f)
	}
	assert.Len(t, renderers, len(Formats))
}

func TestRenderCancelled(t *testing.T) {
	opts := Options{Text: "late"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderLayoutNonFinite(t *testing.T) {
	opts := Options{Text: "a", Style: svgtext.Options{Width: math.NaN()}, Formats: []string{FormatJSON}}
	require.NoError(t, opts.ValidateAndSetDefaults())

	_, err := Render(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDimension, errors.GetCode(err))
}

func TestRunnerExecuteCaches(t *testing.T) {
	hooks := withHooks(t)
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Text: "cached", Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)
	assert.Equal(t, 2, c.sets)
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, hooks.finishes)
	assert.Equal(t, 1, hooks.misses)
	assert.Positive(t, first.Stats.Bytes)

	second, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.Equal(t, first.Stats.Bytes, second.Stats.Bytes)
	assert.Equal(t, 2, c.sets, "cache hit must not write")
	assert.Equal(t, 1, hooks.starts, "cache hit must not render")
	assert.Equal(t, 2, hooks.hits)
}

func TestRunnerDefaultsShareKey(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	_, err := r.Execute(context.Background(), Options{Text: "x"})
	require.NoError(t, err)

	res, err := r.Execute(context.Background(), Options{Text: "x", Style: svgtext.Options{Width: 300, Fill: "#000000"}})
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.RenderHit, "explicit defaults should hit the same entry")
}

func TestRunnerRefresh(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Text: "fresh"}

	_, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)

	opts.Refresh = true
	res, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Equal(t, 2, c.sets)
}

func TestRunnerPartialCacheRenders(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	_, err := r.Execute(context.Background(), Options{Text: "p", Formats: []string{FormatSVG}})
	require.NoError(t, err)

	res, err := r.Execute(context.Background(), Options{Text: "p", Formats: []string{FormatSVG, FormatJSON}})
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Len(t, res.Artifacts, 2)
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Text: "x", Formats: []string{"bmp"}})
	assert.Error(t, err)
}

func TestRunnerPlacement(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	res, err := r.Execute(context.Background(), Options{Text: "x", Style: svgtext.Options{VerticalAlign: svgtext.AlignTop, FontSize: 20}})
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.Placement.X)
	assert.Equal(t, 20.0, res.Placement.Y)
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	assert.NoError(t, r.Close())
}
