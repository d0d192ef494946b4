// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func withGeminiServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	orig := geminiAPIBase
	geminiAPIBase = srv.URL
	t.Cleanup(func() { geminiAPIBase = orig })
}

func withClaudeServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	orig := claudeAPIURL
	claudeAPIURL = srv.URL
	t.Cleanup(func() { claudeAPIURL = orig })
}

func TestGeminiGenerate(t *testing.T) {
	withGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k1", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 350, req.GenerationConfig.MaxOutputTokens)

		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"  a summary  "}]}}]}`)
	})

	b := &GeminiBackend{APIKey: "k1", Model: "test-model", MaxTokens: 350, Temperature: 0.2}
	text, err := b.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "  a summary  ", text)
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non-success status", http.StatusTooManyRequests, `quota exceeded`, "returned 429"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "empty response"},
		{"malformed body", http.StatusOK, `{`, "decoding"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withGeminiServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})
			b := &GeminiBackend{APIKey: "k", Model: "m"}
			_, err := b.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGeminiNoKey(t *testing.T) {
	b := &GeminiBackend{Model: "m"}
	assert.False(t, b.Available())
	_, err := b.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestClaudeGenerate(t *testing.T) {
	withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ck", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1024, req.MaxTokens, "zero MaxTokens falls back to the default")
		assert.Equal(t, "user", req.Messages[0].Role)

		io.WriteString(w, `{"content":[{"type":"text","text":"one"},{"type":"tool_use"},{"type":"text","text":"two"}]}`)
	})

	b := &ClaudeBackend{APIKey: "ck", Model: "claude-test"}
	text, err := b.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", text)
}

func TestClaudeNonSuccess(t *testing.T) {
	withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "overloaded")
	})
	b := &ClaudeBackend{APIKey: "ck", Model: "m"}
	_, err := b.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(types.AIConfig{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini", b.Name())

	b, err = NewBackend(types.AIConfig{Provider: types.ProviderClaude}, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude", b.Name())
	assert.False(t, b.Available())

	_, err = NewBackend(types.AIConfig{Provider: "openai"}, nil)
	assert.Error(t, err)
}

func TestNewBackendModelFollowsProvider(t *testing.T) {
	cfg := types.DefaultDigestConfig().Enrichment.AIConfig
	cfg.Provider = types.ProviderClaude

	b, err := NewBackend(cfg, nil)
	require.NoError(t, err)
	claude, ok := b.(*ClaudeBackend)
	require.True(t, ok)
	assert.Equal(t, types.DefaultClaudeModel, claude.Model)

	cfg.Model = "claude-sonnet-4-5"
	b, err = NewBackend(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5", b.(*ClaudeBackend).Model)

	b, err = NewBackend(types.AIConfig{Provider: types.ProviderGemini}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultGeminiModel, b.(*GeminiBackend).Model)
}

type stubBackend struct {
	text   string
	err    error
	prompt string
}

func (s *stubBackend) Name() string    { return "stub" }
func (s *stubBackend) Available() bool { return true }
func (s *stubBackend) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestClientSummarize(t *testing.T) {
	stub := &stubBackend{text: "\n summary \n"}
	c := NewClient(stub)

	long := strings.Repeat("x", MaxAbstractChars+500)
	text, err := c.Summarize(context.Background(), PaperPrompt{Title: "T", Authors: "A", Source: "NBER", Abstract: long})
	require.NoError(t, err)
	assert.Equal(t, "summary", text)
	assert.Contains(t, stub.prompt, "Title: T")
	assert.Contains(t, stub.prompt, strings.Repeat("x", MaxAbstractChars))
	assert.NotContains(t, stub.prompt, strings.Repeat("x", MaxAbstractChars+1))
}

func TestClientErrors(t *testing.T) {
	var nilClient *Client
	assert.False(t, nilClient.Available())

	_, err := NewClient(nil).Summarize(context.Background(), PaperPrompt{})
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = NewClient(&stubBackend{text: "   "}).Narrate(context.Background(), NarrativePrompt{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = NewClient(&stubBackend{err: errors.New("down")}).Summarize(context.Background(), PaperPrompt{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stub: down")
}
