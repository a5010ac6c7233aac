// Package llm is the text-completion boundary.  A Client sends one system
// message and one user message and returns the first reply verbatim.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

// Providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrNoChoices means the provider answered without any candidate reply.
	ErrNoChoices = errors.New(errors.ErrCodeLLMResponseInvalid, "completion contained no choices")

	// ErrEmptyContent means the first reply carried no text.
	ErrEmptyContent = errors.New(errors.ErrCodeLLMResponseInvalid, "completion content is empty")
)

// Request is a single-turn completion request.
type Request struct {
	System string
	User   string
}

// Completion is the provider reply reduced to what callers use.
type Completion struct {
	Content          string
	Model            string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
}

// Client performs one synchronous completion.  Implementations never retry.
type Client interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Provider() string
	Model() string
}

// Config selects and tunes a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string

	// MaxTokens caps the reply.  Zero leaves the provider default, except for
	// Anthropic which requires a value and falls back to 2048.
	MaxTokens int

	// Temperature is sent only when positive.
	Temperature float64

	// Timeout bounds one request.  Zero means the transport default.
	Timeout time.Duration

	DefaultHeaders map[string]string
	HTTPClient     *http.Client
}

// New builds the Client for cfg.Provider.
func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "llm model is required")
	}
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, errors.Newf(errors.ErrCodeValidation, "unsupported llm provider %q", cfg.Provider)
	}
}

// unavailable wraps a transport or API failure.
func unavailable(provider string, err error) error {
	return errors.Wrap(err, errors.ErrCodeLLMUnavailable, fmt.Sprintf("%s completion failed", provider))
}

//Personal.AI order the ending
