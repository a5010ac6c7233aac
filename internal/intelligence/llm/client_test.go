package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/internal/intelligence/llm"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

type recorded struct {
	path    string
	headers http.Header
	body    map[string]any
}

func fakeProvider(status int, reply string, calls *int32, last *recorded) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		raw, _ := io.ReadAll(r.Body)
		last.path = r.URL.Path
		last.headers = r.Header.Clone()
		last.body = map[string]any{}
		_ = json.Unmarshal(raw, &last.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
}

const openaiReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo-0125",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  {\"patent_id\": \"US-1\"}  "}}],
  "usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
}`

const anthropicReply = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-5-haiku-latest",
  "content": [{"type": "text", "text": "{\"patent_id\": \"US-2\"}"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 80, "output_tokens": 12}
}`

var _ = Describe("New", func() {
	It("rejects an empty model", func() {
		_, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI})
		Expect(errors.IsValidation(err)).To(BeTrue())
	})

	It("rejects an unknown provider", func() {
		_, err := llm.New(llm.Config{Provider: "cohere", Model: "x"})
		Expect(errors.IsValidation(err)).To(BeTrue())
	})

	DescribeTable("selects the provider",
		func(provider, expected string) {
			c, err := llm.New(llm.Config{Provider: provider, Model: "m", APIKey: "k"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Provider()).To(Equal(expected))
			Expect(c.Model()).To(Equal("m"))
		},
		Entry("empty defaults to openai", "", llm.ProviderOpenAI),
		Entry("openai", "openai", llm.ProviderOpenAI),
		Entry("anthropic is case-insensitive", "Anthropic", llm.ProviderAnthropic),
	)
})

var _ = Describe("OpenAI client", func() {
	var (
		calls int32
		last  recorded
	)

	BeforeEach(func() {
		calls = 0
		last = recorded{}
	})

	It("sends system and user messages and returns the trimmed reply", func() {
		srv := fakeProvider(http.StatusOK, openaiReply, &calls, &last)
		DeferCleanup(srv.Close)

		c, err := llm.New(llm.Config{
			Provider:       llm.ProviderOpenAI,
			APIKey:         "sk-test",
			BaseURL:        srv.URL + "/v1/",
			Model:          "gpt-3.5-turbo",
			MaxTokens:      512,
			DefaultHeaders: map[string]string{"x-foo": "true"},
		})
		Expect(err).NotTo(HaveOccurred())

		out, err := c.Complete(context.Background(), llm.Request{System: "persona", User: "analyze"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Content).To(Equal(`{"patent_id": "US-1"}`))
		Expect(out.Model).To(Equal("gpt-3.5-turbo-0125"))
		Expect(out.FinishReason).To(Equal("stop"))
		Expect(out.PromptTokens).To(BeEquivalentTo(120))
		Expect(out.CompletionTokens).To(BeEquivalentTo(30))

		Expect(last.path).To(Equal("/v1/chat/completions"))
		Expect(last.headers.Get("Authorization")).To(Equal("Bearer sk-test"))
		Expect(last.headers.Get("x-foo")).To(Equal("true"))
		Expect(last.body["model"]).To(Equal("gpt-3.5-turbo"))
		Expect(last.body["max_tokens"]).To(BeEquivalentTo(512))
		Expect(last.body).NotTo(HaveKey("temperature"))

		msgs, ok := last.body["messages"].([]any)
		Expect(ok).To(BeTrue())
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0]).To(HaveKeyWithValue("role", "system"))
		Expect(msgs[1]).To(HaveKeyWithValue("role", "user"))
	})

	It("sends temperature only when positive", func() {
		srv := fakeProvider(http.StatusOK, openaiReply, &calls, &last)
		DeferCleanup(srv.Close)

		c, _ := llm.New(llm.Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "m", Temperature: 0.2})
		_, err := c.Complete(context.Background(), llm.Request{System: "s", User: "u"})
		Expect(err).NotTo(HaveOccurred())
		Expect(last.body["temperature"]).To(BeNumerically("~", 0.2))
	})

	It("does not retry a failed call", func() {
		srv := fakeProvider(http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, &calls, &last)
		DeferCleanup(srv.Close)

		c, _ := llm.New(llm.Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "m"})
		_, err := c.Complete(context.Background(), llm.Request{System: "s", User: "u"})
		Expect(err).To(HaveOccurred())
		Expect(errors.IsCode(err, errors.ErrCodeLLMUnavailable)).To(BeTrue())
		Expect(atomic.LoadInt32(&calls)).To(BeEquivalentTo(1))
	})

	It("reports a reply without choices", func() {
		srv := fakeProvider(http.StatusOK, `{"id":"x","object":"chat.completion","model":"m","choices":[]}`, &calls, &last)
		DeferCleanup(srv.Close)

		c, _ := llm.New(llm.Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "m"})
		_, err := c.Complete(context.Background(), llm.Request{System: "s", User: "u"})
		Expect(err).To(MatchError(llm.ErrNoChoices))
	})

	It("honours the request timeout", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		DeferCleanup(srv.Close)

		c, _ := llm.New(llm.Config{Provider: "openai", APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "m", Timeout: 50 * time.Millisecond})
		_, err := c.Complete(context.Background(), llm.Request{System: "s", User: "u"})
		Expect(errors.IsCode(err, errors.ErrCodeLLMUnavailable)).To(BeTrue())
	})
})

var _ = Describe("Anthropic client", func() {
	var (
		calls int32
		last  recorded
	)

	BeforeEach(func() {
		calls = 0
		last = recorded{}
	})

	It("sends the persona as system text and reads the first text block", func() {
		srv := fakeProvider(http.StatusOK, anthropicReply, &calls, &last)
		DeferCleanup(srv.Close)

		c, err := llm.New(llm.Config{
			Provider: llm.ProviderAnthropic,
			APIKey:   "ak-test",
			BaseURL:  srv.URL + "/",
			Model:    "claude-3-5-haiku-latest",
		})
		Expect(err).NotTo(HaveOccurred())

		out, err := c.Complete(context.Background(), llm.Request{System: "persona", User: "analyze"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Content).To(Equal(`{"patent_id": "US-2"}`))
		Expect(out.FinishReason).To(Equal("end_turn"))
		Expect(out.PromptTokens).To(BeEquivalentTo(80))
		Expect(out.CompletionTokens).To(BeEquivalentTo(12))

		Expect(last.path).To(Equal("/v1/messages"))
		Expect(last.headers.Get("X-Api-Key")).To(Equal("ak-test"))
		Expect(last.body["max_tokens"]).To(BeEquivalentTo(2048))

		system, ok := last.body["system"].([]any)
		Expect(ok).To(BeTrue())
		Expect(system[0]).To(HaveKeyWithValue("text", "persona"))
	})

	It("treats a reply without text as empty", func() {
		srv := fakeProvider(http.StatusOK, `{"id":"m","type":"message","role":"assistant","model":"c","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`, &calls, &last)
		DeferCleanup(srv.Close)

		c, _ := llm.New(llm.Config{Provider: "anthropic", APIKey: "k", BaseURL: srv.URL + "/", Model: "c"})
		_, err := c.Complete(context.Background(), llm.Request{System: "s", User: "u"})
		Expect(errors.IsCode(err, errors.ErrCodeLLMResponseInvalid)).To(BeTrue())
	})
})

type stubClient struct {
	out *llm.Completion
	err error
}

func (s stubClient) Complete(context.Context, llm.Request) (*llm.Completion, error) { return s.out, s.err }
func (stubClient) Provider() string                                                { return "stub" }
func (stubClient) Model() string                                                   { return "stub-1" }

var _ = Describe("Instrument", func() {
	It("passes results through and counts calls", func() {
		m := prometheus.NewNopAppMetrics()
		c := llm.Instrument(stubClient{out: &llm.Completion{Content: "{}", PromptTokens: 3}}, m, logging.NewNopLogger())

		out, err := c.Complete(context.Background(), llm.Request{})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Content).To(Equal("{}"))
		Expect(c.Provider()).To(Equal("stub"))
		Expect(c.Model()).To(Equal("stub-1"))
	})

	It("passes errors through", func() {
		c := llm.Instrument(stubClient{err: llm.ErrEmptyContent}, nil, nil)
		_, err := c.Complete(context.Background(), llm.Request{})
		Expect(err).To(MatchError(llm.ErrEmptyContent))
	})
})

//Personal.AI order the ending
