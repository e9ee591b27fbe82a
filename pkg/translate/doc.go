// Package translate suggests translations for new vocabulary words.
//
// A [Provider] asks a language model for the translation of one word. The
// [Translator] adds what every call needs around it: input validation,
// a result cache, retries with backoff for transient failures, and a
// circuit breaker that stops calling a provider that keeps failing.
//
//	p, err := translate.NewProvider(ctx, translate.Config{Provider: "openai", APIKey: key})
//	t := translate.New(p, translate.Options{Cache: c})
//	zh, err := t.Suggest(ctx, "Knowledge")
package translate
