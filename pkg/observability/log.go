package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// all hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetProviderHooks(h)
	SetStoreHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, words int) {
	h.Logger.Debug("layout start", "words", words)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, words, exhausted int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "words", words, "error", err)
		return
	}
	h.Logger.Debug("layout done", "words", words, "exhausted", exhausted, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, provider, model string) {
	h.Logger.Debug("provider request", "provider", provider, "model", model)
}

func (h *LogHooks) OnResponse(_ context.Context, provider, model string, d time.Duration) {
	h.Logger.Debug("provider response", "provider", provider, "model", model, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, provider, model string, err error) {
	h.Logger.Debug("provider error", "provider", provider, "model", model, "error", err)
}

func (h *LogHooks) OnSave(_ context.Context, words int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("store save failed", "words", words, "error", err)
		return
	}
	h.Logger.Debug("store saved", "words", words, "duration", d)
}

var (
	_ StoreHooks    = (*LogHooks)(nil)
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ProviderHooks = (*LogHooks)(nil)
)
