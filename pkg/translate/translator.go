package translate

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/observability"
)

// Options configures a [Translator].
type Options struct {
	// Target is the output language (default [DefaultTarget]).
	Target string

	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Timeout bounds each provider call (default 20s).
	Timeout time.Duration

	// Breaker overrides the default circuit breaker.
	Breaker *Breaker
}

// Translator wraps a provider with caching, retries and a circuit breaker.
// It is safe for concurrent use.
type Translator struct {
	provider Provider
	opts     Options
}

// New creates a translator for p.
func New(p Provider, opts Options) *Translator {
	if opts.Target == "" {
		opts.Target = DefaultTarget
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Breaker == nil {
		opts.Breaker = NewBreaker(p.Name(), 0, 0, opts.Logger)
	}
	return &Translator{provider: p, opts: opts}
}

// Provider returns the wrapped provider.
func (t *Translator) Provider() Provider { return t.provider }

// Suggest returns a translation for word. Results are cached per provider,
// model and target language.
func (t *Translator) Suggest(ctx context.Context, word string) (string, error) {
	if err := errors.ValidateWord(word); err != nil {
		return "", err
	}
	word = strings.TrimSpace(word)

	key := t.opts.Keyer.TranslationKey(t.provider.Name(), t.provider.Model(), t.opts.Target+":"+strings.ToLower(word))
	if data, hit, err := t.opts.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "translation")
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "translation")

	var out string
	err := withRetry(ctx, func() error {
		var err error
		out, err = t.opts.Breaker.Do(func() (string, error) {
			return t.call(ctx, word)
		})
		return err
	})
	if err != nil {
		return "", t.wrap(err)
	}

	if err := t.opts.Cache.Set(ctx, key, []byte(out), cache.TTLTranslation); err != nil {
		t.opts.Logger.Debug("cache translation", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "translation", len(out))
	}
	return out, nil
}

func (t *Translator) call(ctx context.Context, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()

	hooks := observability.Provider()
	name, model := t.provider.Name(), t.provider.Model()
	start := time.Now()
	hooks.OnRequest(ctx, name, model)

	reply, err := t.provider.Translate(ctx, word, t.opts.Target)
	if err != nil {
		hooks.OnError(ctx, name, model, err)
		return "", err
	}
	hooks.OnResponse(ctx, name, model, time.Since(start))

	out := clean(reply)
	if err := errors.ValidateTranslation(out); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s returned no usable translation for %q", name, word)
	}
	t.opts.Logger.Debug("translation suggested", "provider", name, "word", word, "translation", out)
	return out, nil
}

// wrap gives uncoded errors a code so callers can map them.
func (t *Translator) wrap(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out", t.provider.Name())
	case stderrors.Is(err, errNoAnswer):
		return errors.Wrap(errors.ErrCodeNotFound, err, "%s returned no translation", t.provider.Name())
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "%s request failed", t.provider.Name())
}
