package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Providers lists the supported providers.
var Providers = []string{ProviderOpenAI, ProviderGemini}

// DefaultTarget is the language suggestions are requested in.
const DefaultTarget = "Simplified Chinese"

// Provider translates a single word.
type Provider interface {
	Name() string
	Model() string
	Translate(ctx context.Context, word, target string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the API endpoint (proxies, tests).
	BaseURL string
}

// NewProvider builds the provider named in cfg.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "%s API key not set", cfg.Provider)
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unknown translation provider %q (must be one of: %s)", cfg.Provider, strings.Join(Providers, ", "))
}

func prompt(word, target string) string {
	return fmt.Sprintf("Translate the English word '%s' to %s. Respond with only the translation, nothing else.", word, target)
}

const (
	quotes      = "\"'`“”‘’「」"
	punctuation = ".。!！"
)

// clean reduces a model reply to the bare translation: first line, no
// surrounding quotes or trailing punctuation.
func clean(reply string) string {
	s := strings.TrimSpace(reply)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimRight(s, punctuation)
	s = strings.Trim(s, quotes)
	s = strings.TrimRight(s, punctuation)
	return strings.TrimSpace(s)
}
