package llm

import (
	"context"
	"time"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
)

type instrumented struct {
	next    Client
	metrics *prometheus.AppMetrics
	log     logging.Logger
}

// Instrument wraps c so every call is timed, counted and logged at debug.
func Instrument(c Client, metrics *prometheus.AppMetrics, log logging.Logger) Client {
	if metrics == nil {
		metrics = prometheus.NewNopAppMetrics()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &instrumented{next: c, metrics: metrics, log: log.Named("llm")}
}

func (i *instrumented) Provider() string { return i.next.Provider() }
func (i *instrumented) Model() string    { return i.next.Model() }

func (i *instrumented) Complete(ctx context.Context, req Request) (*Completion, error) {
	start := time.Now()
	out, err := i.next.Complete(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		i.metrics.RecordLLMCall(i.Provider(), i.Model(), false, elapsed, 0, 0)
		i.log.Debug("completion failed",
			logging.String("provider", i.Provider()),
			logging.Duration("duration", elapsed),
			logging.Err(err))
		return nil, err
	}

	i.metrics.RecordLLMCall(i.Provider(), i.Model(), true, elapsed, out.PromptTokens, out.CompletionTokens)
	i.log.Debug("completion received",
		logging.String("provider", i.Provider()),
		logging.String("model", out.Model),
		logging.String("finish_reason", out.FinishReason),
		logging.Int64("prompt_tokens", out.PromptTokens),
		logging.Int64("completion_tokens", out.CompletionTokens),
		logging.Duration("duration", elapsed))
	return out, nil
}

//Personal.AI order the ending
