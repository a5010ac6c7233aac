package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/InfringeScope/pkg/client"
)

const analysisJSON = `{
	"analysis_id": "8f14e45f-ceea-467f-a0e6-6c1f1d0e1a11",
	"patent_id": "US-RE49889-E1",
	"company_name": "Walmart Inc.",
	"analysis_date": "2024-10-31T00:00:00Z",
	"top_infringing_products": [{
		"product_name": "Walmart Shopping App",
		"infringement_likelihood": "High",
		"relevant_claims": ["1", "2"],
		"explanation": "Shopping list features map onto claim 1.",
		"specific_features": ["Direct advertisement-to-list functionality"]
	}],
	"overall_risk_assessment": "High risk of infringement"
}`

type CommandsTestSuite struct {
	suite.Suite
	server   *httptest.Server
	requests []*http.Request
	bodies   []string
}

func (s *CommandsTestSuite) SetupTest() {
	s.requests = nil
	s.bodies = nil
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
}

func (s *CommandsTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *CommandsTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.requests = append(s.requests, r)
	s.bodies = append(s.bodies, string(body))

	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "GET /api/v1/companies":
		_, _ = io.WriteString(w, `{"data":[{"id":"c1","name":"Walmart Inc.","products":[{"name":"Walmart+","description":"membership"}]}],"count":7}`)
	case "GET /api/v1/companies/Walmart Inc.":
		_, _ = io.WriteString(w, `{"id":"c1","name":"Walmart Inc.","products":[{"name":"Walmart+","description":"membership"}]}`)
	case "GET /api/v1/patents":
		_, _ = io.WriteString(w, `{"data":[{"id":"p1","publication_number":"US-RE49889-E1","title":"Shopping list","assignee":"Acme"}],"count":1}`)
	case "GET /api/v1/patents/US-RE49889-E1":
		_, _ = io.WriteString(w, `{"id":"p1","publication_number":"US-RE49889-E1","title":"Shopping list","abstract":"A system","priority_date":"2012-02-03T00:00:00Z"}`)
	case "GET /api/v1/infringement":
		_, _ = io.WriteString(w, `{"data":[`+analysisJSON+`],"count":1}`)
	case "GET /api/v1/infringement/8f14e45f-ceea-467f-a0e6-6c1f1d0e1a11", "POST /api/v1/infringement/check":
		_, _ = io.WriteString(w, analysisJSON)
	default:
		w.Header().Set("X-Request-ID", "req-404")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"COMMON_005","message":"Patent not found"}`)
	}
}

func (s *CommandsTestSuite) run(args ...string) (string, error) {
	out, _, err := executeCommand(s.T(), append([]string{"--server", s.server.URL}, args...)...)
	return out, err
}

func (s *CommandsTestSuite) TestCompaniesList_Text() {
	out, err := s.run("companies", "list", "--limit", "5", "--skip", "2")
	s.Require().NoError(err)

	s.Contains(out, "c1  Walmart Inc. (1 products)")
	s.Contains(out, "1 of 7 companies")
	s.Require().Len(s.requests, 1)
	s.Equal("5", s.requests[0].URL.Query().Get("limit"))
	s.Equal("2", s.requests[0].URL.Query().Get("skip"))
}

func (s *CommandsTestSuite) TestCompaniesList_JSONPrintsPayload() {
	out, err := s.run("-o", "json", "companies", "list")
	s.Require().NoError(err)

	var got client.List[client.Company]
	s.Require().NoError(json.Unmarshal([]byte(out), &got))
	s.EqualValues(7, got.Count)
	s.Equal("Walmart+", got.Data[0].Products[0].Name)
}

func (s *CommandsTestSuite) TestCompaniesGet_Table() {
	out, err := s.run("-o", "table", "companies", "get", "Walmart Inc.")
	s.Require().NoError(err)

	s.Contains(out, "PRODUCT   DESCRIPTION")
	s.Contains(out, "Walmart+  membership")
}

func (s *CommandsTestSuite) TestPatentsListAndGet() {
	out, err := s.run("-o", "table", "patents", "list")
	s.Require().NoError(err)
	s.Contains(out, "PUBLICATION NUMBER")
	s.Contains(out, "US-RE49889-E1")

	out, err = s.run("patents", "get", "US-RE49889-E1")
	s.Require().NoError(err)
	s.Contains(out, "US-RE49889-E1  Shopping list")
	s.Contains(out, "priority date: 2012-02-03")
	s.Contains(out, "A system")
}

func (s *CommandsTestSuite) TestAnalysisListAndGet() {
	out, err := s.run("-o", "table", "analysis", "list")
	s.Require().NoError(err)
	s.Contains(out, "2024-10-31")
	s.Contains(out, "High risk of infringement")

	out, err = s.run("analysis", "get", "8f14e45f-ceea-467f-a0e6-6c1f1d0e1a11")
	s.Require().NoError(err)
	s.Contains(out, "1. Walmart Shopping App [High]")
	s.Contains(out, "claims:   1, 2")
}

func (s *CommandsTestSuite) TestCheck_PostsBody() {
	out, err := s.run("check", "--patent", "US-RE49889-E1", "--company", "Walmart Inc.")
	s.Require().NoError(err)
	s.Contains(out, "risk:    High risk of infringement")

	s.Require().Len(s.requests, 1)
	s.Equal(http.MethodPost, s.requests[0].Method)
	s.JSONEq(`{"patent_id":"US-RE49889-E1","company_name":"Walmart Inc."}`, s.bodies[0])
}

func (s *CommandsTestSuite) TestCheck_RequiresBothFlags() {
	_, err := s.run("check", "--patent", "US-RE49889-E1")
	s.Require().Error(err)
	s.Contains(err.Error(), "--patent and --company are required")
	s.Empty(s.requests)
}

func (s *CommandsTestSuite) TestGet_NotFoundSurfacesAPIError() {
	_, err := s.run("patents", "get", "US-0")
	var apiErr *client.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.True(apiErr.IsNotFound())
	s.Equal("req-404", apiErr.RequestID)
}

func (s *CommandsTestSuite) TestGet_RequiresOneArg() {
	_, err := s.run("companies", "get")
	s.Error(err)
	s.Empty(s.requests)
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func TestAnalysisView_DegradedExplanation(t *testing.T) {
	note := "An error occurred during the analysis."
	v := analysisView{&client.Analysis{ID: "a1", OverallRiskAssessment: "An error occurred during the analysis.", Explanation: &note}}

	text := v.String()
	assert.Contains(t, text, "note:    An error occurred during the analysis.")
	assert.Empty(t, v.TableRows())
}

func TestPatentList_NilAssignee(t *testing.T) {
	rows := patentList{&client.List[client.Patent]{Data: []client.Patent{{ID: "p1", Title: "t"}}}}.TableRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"p1", "", "", "t"}, rows[0])
}

//Personal.AI order the ending
