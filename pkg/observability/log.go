package observability

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogHooks logs every event at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnRenderStart(_ context.Context, e RenderEvent) {
	h.logger.Debug("render start", "text_len", e.TextLen, "formats", e.Formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, e RenderEvent) {
	if e.Err != nil {
		h.logger.Debug("render failed", "formats", e.Formats, "duration", e.Duration, "err", e.Err)
		return
	}
	h.logger.Debug("render done", "formats", e.Formats, "bytes", e.Bytes, "duration", e.Duration)
}

func (h *LogHooks) OnCacheHit(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache hit", "format", e.Format, "key", e.Key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache miss", "format", e.Format, "key", e.Key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache set", "format", e.Format, "key", e.Key, "bytes", e.Bytes)
}

func (h *LogHooks) OnRequest(_ context.Context, e HTTPEvent) {
	h.logger.Debug("request", "method", e.Method, "path", e.Path, "request_id", e.RequestID)
}

func (h *LogHooks) OnResponse(_ context.Context, e HTTPEvent) {
	h.logger.Debug("response", "method", e.Method, "path", e.Path, "request_id", e.RequestID,
		"status", e.Status, "duration", e.Duration)
}

var _ Hooks = (*LogHooks)(nil)
