package translate

import (
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// Breaker defaults.
const (
	breakerFailures = 3
	breakerTimeout  = 30 * time.Second
)

// Breaker stops calling a provider after consecutive failures and probes
// it again after a cool-down.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker creates a breaker that opens after failures consecutive
// errors and half-opens after timeout.
func NewBreaker(name string, failures uint32, timeout time.Duration, logger *log.Logger) *Breaker {
	if failures == 0 {
		failures = breakerFailures
	}
	if timeout <= 0 {
		timeout = breakerTimeout
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A word the model cannot translate says nothing about the
			// provider's health.
			return err == nil || errors.Is(err, errors.ErrCodeInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("translation circuit", "provider", name, "from", from.String(), "to", to.String())
			}
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Do runs fn through the breaker. An open circuit fails fast with
// [errors.ErrCodeUnsupported].
func (b *Breaker) Do(fn func() (string, error)) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.Wrap(errors.ErrCodeUnsupported, err, "translation provider unavailable")
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State returns the breaker state name (closed, half-open, open).
func (b *Breaker) State() string { return b.cb.State().String() }
