// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var (
	// ErrNoCredential is returned when no API key is configured.
	ErrNoCredential = errors.New("no API key configured")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("empty response")
)

// Backend sends one prompt to a text-generation API and returns its text.
// Implementations are Strategy objects selected by configuration.
type Backend interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewBackend builds the backend named by cfg.Provider, reusing client for
// every call of the run.
func NewBackend(cfg types.AIConfig, client *http.Client) (Backend, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	switch cfg.Provider {
	case types.ProviderGemini, "":
		return &GeminiBackend{
			APIKey:      cfg.APIKey,
			Model:       cfg.ResolvedModel(),
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Client:      client,
		}, nil
	case types.ProviderClaude:
		return &ClaudeBackend{
			APIKey:    cfg.APIKey,
			Model:     cfg.ResolvedModel(),
			MaxTokens: cfg.MaxTokens,
			Client:    client,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported enrichment provider %q", cfg.Provider)
	}
}

// Client renders prompts and delegates to a Backend. It is the only entry
// point the rest of the pipeline uses to reach the model.
type Client struct {
	backend Backend
}

// NewClient wraps backend. A nil backend yields a client that is never available.
func NewClient(backend Backend) *Client {
	return &Client{backend: backend}
}

// Available reports whether calls can be attempted at all.
func (c *Client) Available() bool {
	return c != nil && c.backend != nil && c.backend.Available()
}

// Summarize asks for a structured summary of one paper.
func (c *Client) Summarize(ctx context.Context, p PaperPrompt) (string, error) {
	prompt, err := renderSummaryPrompt(p)
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	return c.generate(ctx, prompt)
}

// Narrate asks for a short synthesis of the run's top papers.
func (c *Client) Narrate(ctx context.Context, n NarrativePrompt) (string, error) {
	prompt, err := renderNarrativePrompt(n)
	if err != nil {
		return "", fmt.Errorf("rendering narrative prompt: %w", err)
	}
	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", ErrNoCredential
	}
	text, err := c.backend.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.backend.Name(), err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", c.backend.Name(), ErrEmptyResponse)
	}
	return text, nil
}
