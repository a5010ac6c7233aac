// Package analyzer runs one infringement check: it resolves the patent and
// the company, asks the model for findings and stores the outcome.  Model
// failures never surface to the caller; they produce a degraded analysis.
package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/internal/intelligence/jsonspan"
	"github.com/turtacn/InfringeScope/internal/intelligence/llm"
	"github.com/turtacn/InfringeScope/internal/intelligence/prompt"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// CheckInput names the pair to compare.
type CheckInput struct {
	PatentID    string `json:"patent_id"`
	CompanyName string `json:"company_name"`
}

// Validate trims both fields and rejects blanks.
func (in *CheckInput) Validate() error {
	if in == nil {
		return errors.InvalidParam("request body is required")
	}
	in.PatentID = strings.TrimSpace(in.PatentID)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.PatentID == "" {
		return errors.InvalidParam("patent_id is required")
	}
	if in.CompanyName == "" {
		return errors.InvalidParam("company_name is required")
	}
	return nil
}

// EventPublisher announces stored analyses.
type EventPublisher interface {
	AnalysisCompleted(ctx context.Context, a *infringement.Analysis) error
	Topic() string
}

// Service runs infringement checks.
type Service interface {
	// Check returns NotFound when either reference is unknown and a
	// validation error for blank input.  Otherwise it returns the stored
	// analysis, which may be degraded.
	Check(ctx context.Context, in *CheckInput) (*infringement.Analysis, error)
}

// Deps wires a Service.  Store, LLM and Prompts are required.
type Deps struct {
	Store   store.Repositories
	LLM     llm.Client
	Prompts *prompt.Builder
	Events  EventPublisher
	Metrics *prometheus.AppMetrics
	Logger  logging.Logger

	Now   func() time.Time
	NewID func() uuid.UUID
}

type serviceImpl struct {
	store   store.Repositories
	llm     llm.Client
	prompts *prompt.Builder
	events  EventPublisher
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// NewService validates d and returns a Service.
func NewService(d Deps) (Service, error) {
	if d.Store == nil || d.LLM == nil || d.Prompts == nil {
		return nil, errors.New(errors.ErrCodeInternal, "analyzer requires a store, an llm client and a prompt builder")
	}
	s := &serviceImpl{
		store:   d.Store,
		llm:     d.LLM,
		prompts: d.Prompts,
		events:  d.Events,
		metrics: d.Metrics,
		logger:  d.Logger,
		now:     d.Now,
		newID:   d.NewID,
	}
	if s.metrics == nil {
		s.metrics = prometheus.NewNopAppMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	s.logger = s.logger.Named("analyzer")
	return s, nil
}

func (s *serviceImpl) Check(ctx context.Context, in *CheckInput) (*infringement.Analysis, error) {
	if err := in.Validate(); err != nil {
		s.metrics.RecordAnalysis(prometheus.OutcomeRejected)
		return nil, err
	}

	c, p, err := s.lookup(ctx, in)
	if err != nil {
		s.metrics.RecordAnalysis(prometheus.OutcomeRejected)
		return nil, err
	}

	a := infringement.NewAnalysis(s.newID(), p.PublicationNumber, c.Name, s.now())
	log := s.logger.With(
		logging.String("analysis_id", a.ID.String()),
		logging.String("patent_id", a.PatentID),
		logging.String("company_name", a.CompanyName),
	)

	findings, err := s.analyze(ctx, p, c)
	outcome := prometheus.OutcomeCompleted
	if err != nil {
		a.Degrade()
		outcome = prometheus.OutcomeDegraded
		log.Warn("Infringement analysis degraded", logging.Err(err))
	} else {
		a.ApplyFindings(*findings)
	}

	if err := s.store.Analyses().Insert(ctx, a); err != nil {
		log.Error("Failed to store infringement analysis", logging.Err(err))
		return nil, err
	}
	s.metrics.RecordAnalysis(outcome)
	log.Info("Infringement analysis stored",
		logging.String("outcome", outcome),
		logging.Int("product_count", len(a.TopInfringingProducts)))

	s.publish(ctx, a, log)
	return a, nil
}

func (s *serviceImpl) lookup(ctx context.Context, in *CheckInput) (*company.Company, *patent.Patent, error) {
	c, err := s.store.Companies().GetByName(ctx, in.CompanyName)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.store.Patents().GetByPublicationNumber(ctx, in.PatentID)
	if err != nil {
		return nil, nil, err
	}
	return c, p, nil
}

// analyze performs the single model round trip.  Any error it returns means
// the caller should store a degraded result.
func (s *serviceImpl) analyze(ctx context.Context, p *patent.Patent, c *company.Company) (*infringement.Findings, error) {
	msg, err := s.prompts.Build(p, c)
	if err != nil {
		return nil, err
	}

	out, err := s.llm.Complete(ctx, llm.Request{System: msg.System, User: msg.User})
	if err != nil {
		return nil, err
	}

	var f infringement.Findings
	if err := jsonspan.Decode(out.Content, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *serviceImpl) publish(ctx context.Context, a *infringement.Analysis, log logging.Logger) {
	if s.events == nil {
		return
	}
	err := s.events.AnalysisCompleted(ctx, a)
	s.metrics.RecordEventPublished(s.events.Topic(), err == nil)
	if err != nil {
		log.Warn("Failed to publish analysis event", logging.Err(err))
	}
}

//Personal.AI order the ending
