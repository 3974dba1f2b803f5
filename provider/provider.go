package provider

import (
	"context"
	"errors"

	"github.com/gibbsgresge/CrisisEventSite/config"
	openai_provider "github.com/gibbsgresge/CrisisEventSite/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// ErrUnavailable marks a generator that cannot be reached at all, as
// opposed to a request the model rejected.
var ErrUnavailable = openai_provider.ErrUnavailable

// Params are the per-call generation knobs. Zero values fall back to the
// provider's configured defaults.
type Params = openai_provider.Params

// Provider is the generative-text capability injected into the pipeline.
// It is constructed once at service start and shared read-only across
// concurrent jobs.
type Provider interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// NewProvider creates an LLM client based on the provided configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	var p Provider
	switch Client(cfg.Provider) {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set")
		}
		p = openai_provider.NewOpenAIClient(
			cfg.APIKey,
			cfg.BaseURL,
			cfg.CompletionModel,
			cfg.Temperature,
			cfg.TopP,
			cfg.MaxTokens,
			cfg.Timeout,
		)
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
	return Limited(p, cfg.MaxConcurrent), nil
}

// Limited caps simultaneous Generate calls at n. The pipeline does not
// assume the backing model is safe for unbounded concurrent invocation.
func Limited(p Provider, n int) Provider {
	if n <= 0 {
		return p
	}
	return &limited{inner: p, sem: make(chan struct{}, n)}
}

type limited struct {
	inner Provider
	sem   chan struct{}
}

func (l *limited) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-l.sem }()
	return l.inner.Generate(ctx, prompt, params)
}
