// Package llm defines the contract between the invocation wrapper and the
// generative-model adapters in its subpackages.
package llm

import (
	"context"
	"net/http"
)

// Provider turns a prompt into free text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// StructuredProvider is implemented by adapters whose API can constrain the
// answer to a JSON schema. The returned value is already decoded.
type StructuredProvider interface {
	Provider
	CompleteStructured(ctx context.Context, prompt string, schema Schema) (any, error)
}

// Schema names a JSON schema document.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Kind tags a Response.
type Kind int

const (
	PlainText Kind = iota
	Structured
)

func (k Kind) String() string {
	if k == Structured {
		return "structured"
	}
	return "text"
}

// Response is what an adapter produced: either text that still needs
// parsing, or an already-typed value.
type Response struct {
	Kind  Kind
	Text  string
	Value any
}

// Options configures an adapter.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL    string
	HTTPClient *http.Client
}

// Provider names accepted by the configuration.
const (
	OpenAI    = "openai"
	Gemini    = "gemini"
	Anthropic = "anthropic"
)

// Names lists the supported providers in display order.
func Names() []string {
	return []string{OpenAI, Gemini, Anthropic}
}

// DefaultModel returns the model used when the configuration leaves it empty.
func DefaultModel(provider string) string {
	switch provider {
	case OpenAI:
		return "gpt-4o-mini"
	case Anthropic:
		return "claude-3-5-haiku-latest"
	default:
		return "gemini-2.0-flash"
	}
}
