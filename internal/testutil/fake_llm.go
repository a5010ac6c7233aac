package testutil

import (
	"context"
	"sync"

	"github.com/turtacn/InfringeScope/internal/intelligence/llm"
)

// FakeLLM is a scripted llm.Client.  It returns Reply, or Err when set, and
// records every request.
type FakeLLM struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	requests []llm.Request
}

var _ llm.Client = (*FakeLLM)(nil)

// NewFakeLLM returns a client that answers every call with reply.
func NewFakeLLM(reply string) *FakeLLM {
	return &FakeLLM{Reply: reply}
}

func (f *FakeLLM) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.Completion{
		Content:      f.Reply,
		Model:        "fake-model",
		FinishReason: "stop",
	}, nil
}

func (f *FakeLLM) Provider() string { return "fake" }
func (f *FakeLLM) Model() string    { return "fake-model" }

// Calls returns how many completions were requested.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// LastRequest returns the most recent request.
func (f *FakeLLM) LastRequest() (llm.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.Request{}, false
	}
	return f.requests[len(f.requests)-1], true
}

//Personal.AI order the ending
