package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 2048

type anthropicClient struct {
	client anthropic.Client
	cfg    Config
}

func newAnthropicClient(cfg Config) *anthropicClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	for k, v := range cfg.DefaultHeaders {
		opts = append(opts, option.WithHeader(k, v))
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultAnthropicMaxTokens
	}

	return &anthropicClient{client: anthropic.NewClient(opts...), cfg: cfg}
}

func (c *anthropicClient) Provider() string { return ProviderAnthropic }
func (c *anthropicClient) Model() string    { return c.cfg.Model }

func (c *anthropicClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(c.cfg.Temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, unavailable(ProviderAnthropic, err)
	}
	if len(resp.Content) == 0 {
		return nil, ErrNoChoices
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	return &Completion{
		Content:          text,
		Model:            string(resp.Model),
		FinishReason:     string(resp.StopReason),
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
	}, nil
}

//Personal.AI order the ending
