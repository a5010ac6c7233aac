package analyzer

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/internal/intelligence/llm"
	"github.com/turtacn/InfringeScope/internal/intelligence/prompt"
	"github.com/turtacn/InfringeScope/internal/testutil"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

const (
	testPatentID    = "US-RE49889-E1"
	testCompanyName = "Walmart Inc."
)

type fakeEvents struct {
	err       error
	published []*infringement.Analysis
}

func (f *fakeEvents) AnalysisCompleted(_ context.Context, a *infringement.Analysis) error {
	f.published = append(f.published, a)
	return f.err
}

func (f *fakeEvents) Topic() string { return "infringement.analysis.completed" }

type AnalyzerTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *testutil.MemStore
	llm       *testutil.FakeLLM
	events    *fakeEvents
	log       *testutil.MockLogger
	collector prometheus.MetricsCollector
	svc       Service
	fixedID   uuid.UUID
	fixedNow  time.Time
}

func (s *AnalyzerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewMemStore()
	s.llm = testutil.NewFakeLLM("")
	s.events = &fakeEvents{}
	s.log = testutil.NewMockLogger()
	s.fixedID = uuid.MustParse("2b0a4c1e-7f59-4d0e-9f39-5a2b8d6f1c11")
	s.fixedNow = time.Date(2024, 10, 31, 12, 0, 0, 0, time.UTC)

	c, err := company.NewCompany(testCompanyName, []company.Product{
		{Name: "Walmart Shopping App", Description: "Mobile shopping"},
		{Name: "Walmart+", Description: "Subscription"},
	})
	s.Require().NoError(err)
	_, err = s.store.Companies().Insert(s.ctx, c)
	s.Require().NoError(err)

	p, err := patent.NewPatent(testPatentID, "Shopping list method")
	s.Require().NoError(err)
	p.Claims = patent.Structured([]patent.Claim{{Num: "00001", Text: "A method..."}})
	_, err = s.store.Patents().Insert(s.ctx, p)
	s.Require().NoError(err)

	s.collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test"}, nil)
	s.Require().NoError(err)

	prompts, err := prompt.NewBuilder(prompt.Options{})
	s.Require().NoError(err)

	s.svc, err = NewService(Deps{
		Store:   s.store,
		LLM:     s.llm,
		Prompts: prompts,
		Events:  s.events,
		Metrics: prometheus.NewAppMetrics(s.collector),
		Logger:  s.log,
		Now:     func() time.Time { return s.fixedNow },
		NewID:   func() uuid.UUID { return s.fixedID },
	})
	s.Require().NoError(err)
}

func (s *AnalyzerTestSuite) check(patentID, companyName string) (*infringement.Analysis, error) {
	return s.svc.Check(s.ctx, &CheckInput{PatentID: patentID, CompanyName: companyName})
}

func (s *AnalyzerTestSuite) scrape() string {
	rec := httptest.NewRecorder()
	s.collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func (s *AnalyzerTestSuite) TestCheck_EchoesInput() {
	s.llm.Reply = `{"top_infringing_products": [{"product_name": "Walmart+", "infringement_likelihood": "High", "relevant_claims": [1, "2"], "explanation": "x", "specific_features": ["lists"]}], "overall_risk_assessment": "High risk"}`

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)

	s.Equal(testPatentID, a.PatentID)
	s.Equal(testCompanyName, a.CompanyName)
	s.Equal(s.fixedID, a.ID)
	s.Equal(s.fixedNow, a.AnalysisDate)
	s.Equal("High risk", a.OverallRiskAssessment)
	s.Require().Len(a.TopInfringingProducts, 1)
	s.Equal(infringement.ClaimRefs{"1", "2"}, a.TopInfringingProducts[0].RelevantClaims)
	s.Equal(1, s.llm.Calls())
}

func (s *AnalyzerTestSuite) TestCheck_TrimsInput() {
	s.llm.Reply = `{"top_infringing_products": [], "overall_risk_assessment": "Low"}`

	a, err := s.check("  "+testPatentID+" ", "\t"+testCompanyName)
	s.Require().NoError(err)
	s.Equal(testPatentID, a.PatentID)
	s.Equal(testCompanyName, a.CompanyName)
}

func (s *AnalyzerTestSuite) TestCheck_SendsPersonaAndPrompt() {
	s.llm.Reply = `{}`

	_, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)

	req, ok := s.llm.LastRequest()
	s.Require().True(ok)
	s.Equal(prompt.SystemPersona, req.System)
	s.Contains(req.User, `"patent_id": "US-RE49889-E1"`)
	s.Contains(req.User, "Walmart Shopping App")
}

func (s *AnalyzerTestSuite) TestCheck_UnknownCompany() {
	_, err := s.check(testPatentID, "Nobody Corp")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.True(errors.IsCode(err, errors.ErrCodeCompanyNotFound))
	s.Equal(0, s.llm.Calls())
	s.Equal(0, s.store.AnalysisCount())
}

func (s *AnalyzerTestSuite) TestCheck_UnknownPatent() {
	_, err := s.check("US-0000000-A1", testCompanyName)
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodePatentNotFound))
	s.Equal(0, s.llm.Calls())
	s.Contains(s.scrape(), `test_infringement_analyses_total{outcome="rejected"} 1`)
}

func (s *AnalyzerTestSuite) TestCheck_BlankInput() {
	for _, in := range []*CheckInput{nil, {PatentID: " ", CompanyName: testCompanyName}, {PatentID: testPatentID}} {
		_, err := s.svc.Check(s.ctx, in)
		s.True(errors.IsValidation(err))
	}
	s.Equal(0, s.llm.Calls())
}

func (s *AnalyzerTestSuite) TestCheck_ProseAroundJSON() {
	s.llm.Reply = "Here is the result: {\"top_infringing_products\": [], \"overall_risk_assessment\": \"Low\"} Thanks!"

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.Equal("Low", a.OverallRiskAssessment)
	s.Empty(a.TopInfringingProducts)
	s.NotNil(a.TopInfringingProducts)
	s.False(a.IsDegraded())
}

func (s *AnalyzerTestSuite) TestCheck_NoBracesDegrades() {
	s.llm.Reply = "I cannot help with that."

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.Equal(infringement.DegradedRiskAssessment, a.OverallRiskAssessment)
	s.Empty(a.TopInfringingProducts)
	s.Equal(testPatentID, a.PatentID)
	s.Equal(s.fixedID, a.ID)
	s.True(s.log.HasMessage("warn", "Infringement analysis degraded"))
}

func (s *AnalyzerTestSuite) TestCheck_MissingAssessmentDefaultsEmpty() {
	s.llm.Reply = `{"top_infringing_products": [{"product_name": "Walmart+"}]}`

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.Equal("", a.OverallRiskAssessment)
	s.Require().Len(a.TopInfringingProducts, 1)
	s.Equal(infringement.ClaimRefs{}, a.TopInfringingProducts[0].RelevantClaims)
	s.Equal([]string{}, a.TopInfringingProducts[0].SpecificFeatures)
}

func (s *AnalyzerTestSuite) TestCheck_WrongShapeDegrades() {
	s.llm.Reply = `{"top_infringing_products": "none", "overall_risk_assessment": "Low"}`

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.True(a.IsDegraded())
}

func (s *AnalyzerTestSuite) TestCheck_LLMErrorDegrades() {
	s.llm.Err = llm.ErrNoChoices

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.True(a.IsDegraded())
	s.Equal(1, s.llm.Calls())
	s.Contains(s.scrape(), `test_infringement_analyses_total{outcome="degraded"} 1`)
}

func (s *AnalyzerTestSuite) TestCheck_PersistsEveryResult() {
	s.llm.Reply = `{"overall_risk_assessment": "Low"}`
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	n := 0
	s.svc.(*serviceImpl).newID = func() uuid.UUID {
		id := ids[n]
		n++
		return id
	}

	_, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.llm.Reply = "garbage"
	_, err = s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)

	s.Equal(2, s.store.AnalysisCount())
	stored, err := s.store.Analyses().GetByID(s.ctx, ids[1])
	s.Require().NoError(err)
	s.True(stored.IsDegraded())
}

func (s *AnalyzerTestSuite) TestCheck_StoreFailureSurfaces() {
	s.llm.Reply = `{}`
	s.store.FailOn(testutil.OpAnalysisInsert, stderrors.New("disk full"))

	_, err := s.check(testPatentID, testCompanyName)
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeDatabaseError))
	s.Empty(s.events.published)
}

func (s *AnalyzerTestSuite) TestCheck_PublishesEvent() {
	s.llm.Reply = `{}`

	a, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.Require().Len(s.events.published, 1)
	s.Equal(a.ID, s.events.published[0].ID)
	s.Contains(s.scrape(), `test_events_published_total{status="success",topic="infringement.analysis.completed"} 1`)
}

func (s *AnalyzerTestSuite) TestCheck_PublishFailureIsIgnored() {
	s.llm.Reply = `{}`
	s.events.err = stderrors.New("broker down")

	_, err := s.check(testPatentID, testCompanyName)
	s.Require().NoError(err)
	s.True(s.log.HasMessage("warn", "Failed to publish analysis event"))
}

func TestAnalyzerTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerTestSuite))
}

func TestNewService_RequiresDeps(t *testing.T) {
	_, err := NewService(Deps{})
	assert.Error(t, err)

	prompts, err := prompt.NewBuilder(prompt.Options{})
	require.NoError(t, err)
	svc, err := NewService(Deps{Store: testutil.NewMemStore(), LLM: testutil.NewFakeLLM("{}"), Prompts: prompts})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

//Personal.AI order the ending
