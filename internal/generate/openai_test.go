package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionServer fakes the /v1/completions endpoint.
func completionServer(t *testing.T, handler func(w http.ResponseWriter, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		handler(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	var got map[string]any
	srv := completionServer(t, func(w http.ResponseWriter, body map[string]any) {
		got = body
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"text_completion","model":"gpt-3.5-turbo-instruct",
			"choices":[{"text":" and the waves rolled in","index":0,"finish_reason":"length"}],
			"usage":{"prompt_tokens":4,"completion_tokens":6,"total_tokens":10}}`))
	})

	g := NewOpenAI(Options{APIKey: "test", BaseURL: srv.URL + "/v1", Model: "gpt-3.5-turbo-instruct", MaxTokens: 40})
	out, err := g.Generate(context.Background(), "tell me a story")
	require.NoError(t, err)

	assert.Equal(t, " and the waves rolled in", out)
	assert.Equal(t, "tell me a story", got["prompt"])
	assert.Equal(t, "gpt-3.5-turbo-instruct", got["model"])
	assert.EqualValues(t, 40, got["max_tokens"])
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"id":"cmpl-2","choices":[]}`))
	})

	g := NewOpenAI(Options{BaseURL: srv.URL + "/v1", Model: "gpt-3.5-turbo-instruct"})
	_, err := g.Generate(context.Background(), "hi")
	require.ErrorIs(t, err, ErrNoChoices)
}

func TestGenerate_APIError(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ map[string]any) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	})

	g := NewOpenAI(Options{BaseURL: srv.URL + "/v1", Model: "gpt-3.5-turbo-instruct"})
	_, err := g.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := completionServer(t, func(w http.ResponseWriter, _ map[string]any) {
		<-release
		_, _ = w.Write([]byte(`{"choices":[{"text":"late"}]}`))
	})
	defer close(release)

	g := NewOpenAI(Options{BaseURL: srv.URL + "/v1", Model: "gpt-3.5-turbo-instruct", Timeout: 50 * time.Millisecond})
	_, err := g.Generate(context.Background(), "hi")
	require.Error(t, err)
}
