package translate

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// OpenAI asks a chat completion model for translations.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider. The model defaults to gpt-4o-mini.
func NewOpenAI(cfg Config) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClientWithConfig(oc), model: model}
}

func (p *OpenAI) Name() string  { return ProviderOpenAI }
func (p *OpenAI) Model() string { return p.model }

// Translate implements [Provider].
func (p *OpenAI) Translate(ctx context.Context, word, target string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(word, target),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAI(err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoAnswer
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAI maps API errors to error codes; 5xx responses are
// retryable.
func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return errors.Wrap(errors.ErrCodeRateLimited, err, "openai rate limit")
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return errors.Wrap(errors.ErrCodeUnauthorized, err, "openai rejected the API key")
		case apiErr.HTTPStatusCode >= 500:
			return transient(fmt.Errorf("%w: openai %d: %v", errUnavailable, apiErr.HTTPStatusCode, err))
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "openai request failed")
	}
	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) && reqErr.HTTPStatusCode >= 500 {
		return transient(fmt.Errorf("%w: openai %d", errUnavailable, reqErr.HTTPStatusCode))
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return transient(fmt.Errorf("%w: %v", errUnavailable, err))
}
