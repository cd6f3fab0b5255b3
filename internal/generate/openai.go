// Package generate talks to the text-completion model that plays the other
// side of the dialogue.
//
// Any OpenAI-compatible /completions endpoint works: the hosted API, or a
// local server (llama.cpp, vLLM, text-generation-inference) serving gpt2 via
// OPENAI_BASE_URL.
package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNoChoices is returned when the model answers without any completion.
var ErrNoChoices = errors.New("generate: empty completion")

// Options configures an OpenAI client.
type Options struct {
	APIKey    string
	BaseURL   string // optional; defaults to the public API
	Model     string
	MaxTokens int
	Timeout   time.Duration // per call; zero means no extra deadline
	HTTP      *http.Client  // optional
}

// OpenAI generates continuations through the legacy completions API.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAI builds a completion client from opts.
func NewOpenAI(opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTP != nil {
		cfg.HTTPClient = opts.HTTP
	}
	return &OpenAI{
		client:    openai.NewClientWithConfig(cfg),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
	}
}

// Generate returns one continuation of prompt. It makes a single request;
// failures are returned to the caller as-is.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := o.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:     o.model,
		Prompt:    prompt,
		MaxTokens: o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	log.Debug().
		Str("model", o.model).
		Dur("took", time.Since(start)).
		Int("completionTokens", resp.Usage.CompletionTokens).
		Msg("completion")
	return resp.Choices[0].Text, nil
}
