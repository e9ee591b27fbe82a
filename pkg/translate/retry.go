package translate

import (
	"context"
	stderrors "errors"
	"time"
)

var (
	// errNoAnswer means the provider replied without any candidate text.
	errNoAnswer = stderrors.New("provider returned no candidates")

	// errUnavailable marks provider outages: 5xx replies, resets, timeouts
	// inside the SDK.
	errUnavailable = stderrors.New("provider unavailable")
)

// transientError marks a failure worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return stderrors.As(err, &te)
}

// backoff lists the pauses between attempts; its length bounds the retries.
var backoff = []time.Duration{time.Second, 2 * time.Second}

// withRetry runs fn until it succeeds, fails permanently or backoff runs
// out. The last error is returned unchanged.
func withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, pause := range backoff {
		if err == nil || !isTransient(err) {
			return err
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		err = fn()
	}
	return err
}
