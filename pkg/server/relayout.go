package server

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// relayouter runs fn in the background, canceling the previous run when a
// new one is triggered.
type relayouter struct {
	fn     func(ctx context.Context) error
	logger *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	completed atomic.Uint64
	canceled  atomic.Uint64
}

func newRelayouter(fn func(ctx context.Context) error, logger *log.Logger) *relayouter {
	return &relayouter{fn: fn, logger: logger}
}

// trigger supersedes any pending run with a new one.
func (r *relayouter) trigger(parent context.Context) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer cancel()
		if err := r.fn(ctx); err != nil {
			if ctx.Err() != nil {
				r.canceled.Add(1)
				r.logger.Debug("relayout superseded")
				return
			}
			r.logger.Warn("relayout failed", "error", err)
			return
		}
		r.completed.Add(1)
	}()
}

// stop cancels the pending run and waits for it to return.
func (r *relayouter) stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// wait blocks until all triggered runs have returned.
func (r *relayouter) wait() {
	r.mu.Lock()
	r.mu.Unlock()
	r.wg.Wait()
}
