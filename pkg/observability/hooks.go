// Package observability lets a deployment watch wordwall work without the
// libraries depending on a metrics backend.
//
// Layout, cache, provider and store code report events to the registered
// hooks; by default nothing listens. The CLI installs [LogHooks] so the
// events show up with --verbose:
//
//	observability.NewLogHooks(logger).Install()
//
// and the emitting side looks like:
//
//	observability.Pipeline().OnLayoutStart(ctx, len(words))
//	// ... place words ...
//	observability.Pipeline().OnLayoutComplete(ctx, len(words), exhausted, time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the layout and render pipeline.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, words int)
	OnLayoutComplete(ctx context.Context, words, exhausted int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups. keyType is "layout", "artifact" or
// "translation".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ProviderHooks receives events from translation provider calls.
type ProviderHooks interface {
	OnRequest(ctx context.Context, provider, model string)
	OnResponse(ctx context.Context, provider, model string, duration time.Duration)
	OnError(ctx context.Context, provider, model string, err error)
}

// StoreHooks receives word list writes. err is the backend failure, if any.
type StoreHooks interface {
	OnSave(ctx context.Context, words int, duration time.Duration, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopProviderHooks struct{}

func (NoopProviderHooks) OnRequest(context.Context, string, string)                 {}
func (NoopProviderHooks) OnResponse(context.Context, string, string, time.Duration) {}
func (NoopProviderHooks) OnError(context.Context, string, string, error)            {}

type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, int, time.Duration, error) {}

// slot holds the registered hooks of one category. Reads are lock-free.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(h T) {
	if any(h) != nil {
		s.p.Store(&h)
	}
}

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	providerSlot = slot[ProviderHooks]{noop: NoopProviderHooks{}}
	storeSlot    = slot[StoreHooks]{noop: NoopStoreHooks{}}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetProviderHooks registers h. A nil h is ignored.
func SetProviderHooks(h ProviderHooks) { providerSlot.set(h) }

// SetStoreHooks registers h. A nil h is ignored.
func SetStoreHooks(h StoreHooks) { storeSlot.set(h) }

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func Provider() ProviderHooks { return providerSlot.get() }
func Store() StoreHooks       { return storeSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	providerSlot.p.Store(nil)
	storeSlot.p.Store(nil)
}
