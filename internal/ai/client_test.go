package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/credential"
	"github.com/nhle/flowstate/internal/model"
)

var longText = strings.Repeat("The launch plan covers design, rollout and support. ", 3)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("sk-test", model.AIConfig{BaseURL: srv.URL + "/", Model: "m-1", MaxTokens: 256})
}

func TestClient_Summarize(t *testing.T) {
	var got apiRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"- design\n"},{"type":"text","text":"- rollout"}]}`))
	})

	out, err := c.Summarize(context.Background(), longText)
	require.NoError(t, err)
	assert.Equal(t, "- design\n- rollout", out)

	assert.Equal(t, "m-1", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	assert.Equal(t, systemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content[0].Text, "---\n\n"+longText)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	})

	_, err := c.Summarize(context.Background(), longText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (429): slow down")
}

func TestClient_EmptyResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	_, err := c.Summarize(context.Background(), longText)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("  ", model.AIConfig{})
	assert.False(t, c.Ready())
	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, defaultMaxTokens, c.maxTokens)
	assert.Equal(t, defaultBaseURL, c.baseURL)

	var nilClient *Client
	assert.False(t, nilClient.Ready())
}

type stubSummarizer struct {
	ready bool
	out   string
	err   error
	calls int
}

func (s *stubSummarizer) Ready() bool { return s.ready }

func (s *stubSummarizer) Summarize(context.Context, string) (string, error) {
	s.calls++
	return s.out, s.err
}

func TestSummarize_Wrapper(t *testing.T) {
	ctx := context.Background()

	t.Run("no key", func(t *testing.T) {
		s := &stubSummarizer{}
		assert.Equal(t, MockSummary, Summarize(ctx, s, "short"))
		assert.Equal(t, MockSummary, Summarize(ctx, nil, longText))
		assert.Zero(t, s.calls)
		assert.Contains(t, MockSummary, credential.SummarizerEnv)
		assert.Contains(t, MockSummary, "flowstate key set")
		assert.NotContains(t, MockSummary, " API_KEY ")
	})

	t.Run("too short", func(t *testing.T) {
		s := &stubSummarizer{ready: true}
		assert.Equal(t, TooShortSummary, Summarize(ctx, s, "   "+strings.Repeat("x", 49)+"   "))
		assert.Zero(t, s.calls)
	})

	t.Run("success", func(t *testing.T) {
		s := &stubSummarizer{ready: true, out: "- point"}
		assert.Equal(t, "- point", Summarize(ctx, s, strings.Repeat("x", 50)))
	})

	t.Run("failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logCtx := zerolog.New(&buf).WithContext(ctx)
		s := &stubSummarizer{ready: true, err: errors.New("boom")}
		assert.Equal(t, FailedSummary, Summarize(logCtx, s, longText))
		assert.Contains(t, buf.String(), "boom")
	})
}
