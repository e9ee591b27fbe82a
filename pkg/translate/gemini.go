package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini asks a Gemini model for translations.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	gc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		gc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, gc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (p *Gemini) Name() string  { return ProviderGemini }
func (p *Gemini) Model() string { return p.model }

// Translate implements [Provider].
func (p *Gemini) Translate(ctx context.Context, word, target string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.3)),
		MaxOutputTokens: 50,
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt(word, target)}}}}, config)
	if err != nil {
		return "", classifyGemini(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errNoAnswer
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// classifyGemini inspects the error text; the SDK reports status in the
// message.
func classifyGemini(err error) error {
	msg := err.Error()
	switch {
	case containsAny(msg, "429", "RESOURCE_EXHAUSTED", "rate limit", "quota exceeded"):
		return errors.Wrap(errors.ErrCodeRateLimited, err, "gemini rate limit")
	case containsAny(msg, "401", "403", "API_KEY_INVALID", "PERMISSION_DENIED"):
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "gemini rejected the API key")
	case containsAny(msg, "500", "502", "503", "504", "UNAVAILABLE", "INTERNAL", "connection reset"):
		return transient(fmt.Errorf("%w: gemini: %v", errUnavailable, err))
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "gemini request failed")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
