package infringement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimRefs_AcceptsNumbers(t *testing.T) {
	var d ProductDetail
	require.NoError(t, json.Unmarshal([]byte(`{"product_name":"Cart","relevant_claims":[1,"2",3.5]}`), &d))
	assert.Equal(t, ClaimRefs{"1", "2", "3.5"}, d.RelevantClaims)
}

func TestClaimRefs_RejectsObjects(t *testing.T) {
	var refs ClaimRefs
	assert.Error(t, json.Unmarshal([]byte(`[{"n":1}]`), &refs))
	assert.Error(t, json.Unmarshal([]byte(`"1"`), &refs))
}

func TestClaimRefs_Null(t *testing.T) {
	var refs ClaimRefs
	require.NoError(t, json.Unmarshal([]byte(`null`), &refs))
	assert.Equal(t, ClaimRefs{}, refs)
}

func TestNewAnalysis_Defaults(t *testing.T) {
	id := uuid.New()
	date := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)
	a := NewAnalysis(id, "US-RE49889-E1", "Walmart Inc.", date)

	assert.Equal(t, DefaultRiskAssessment, a.OverallRiskAssessment)
	assert.Equal(t, []ProductDetail{}, a.TopInfringingProducts)
	assert.False(t, a.IsDegraded())

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"analysis_id":"`+id.String()+`"`)
	assert.Contains(t, string(raw), `"top_infringing_products":[]`)
	assert.NotContains(t, string(raw), "explanation")
}

func TestApplyFindings(t *testing.T) {
	a := NewAnalysis(uuid.New(), "P", "C", time.Now())

	a.ApplyFindings(Findings{})
	assert.Equal(t, "", a.OverallRiskAssessment)
	assert.Equal(t, []ProductDetail{}, a.TopInfringingProducts)

	a.ApplyFindings(Findings{
		TopInfringingProducts: []ProductDetail{{ProductName: "Cart", InfringementLikelihood: LikelihoodHigh}},
		OverallRiskAssessment: "High risk",
	})
	require.Len(t, a.TopInfringingProducts, 1)
	assert.Equal(t, ClaimRefs{}, a.TopInfringingProducts[0].RelevantClaims)
	assert.Equal(t, []string{}, a.TopInfringingProducts[0].SpecificFeatures)
}

func TestDegrade_KeepsIdentity(t *testing.T) {
	id := uuid.New()
	date := time.Now().UTC()
	a := NewAnalysis(id, "P", "C", date)
	a.ApplyFindings(Findings{
		TopInfringingProducts: []ProductDetail{{ProductName: "x"}},
		OverallRiskAssessment: "Low",
	})

	a.Degrade()

	assert.Equal(t, id, a.ID)
	assert.Equal(t, "P", a.PatentID)
	assert.Equal(t, "C", a.CompanyName)
	assert.Equal(t, date, a.AnalysisDate)
	assert.Empty(t, a.TopInfringingProducts)
	assert.True(t, a.IsDegraded())
}

//Personal.AI order the ending
