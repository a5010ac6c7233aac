// Package infringement models the outcome of comparing one patent's claims
// with one company's product portfolio.
package infringement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Risk assessments with fixed meaning.
const (
	// DefaultRiskAssessment is stored when a seeded record omits the field.
	DefaultRiskAssessment = "Not Assessed"

	// DegradedRiskAssessment marks an analysis the model could not produce.
	DegradedRiskAssessment = "An error occurred during the analysis."
)

// Limits on the denormalized references, in characters.
const (
	MaxPatentIDLength    = 50
	MaxCompanyNameLength = 255
)

// Conventional likelihood labels.  Values outside this set are stored as is.
const (
	LikelihoodHigh     = "High"
	LikelihoodModerate = "Moderate"
	LikelihoodLow      = "Low"
)

// ClaimRefs is a list of claim numbers.  Numeric JSON elements are converted
// to their decimal string form.
type ClaimRefs []string

func (r *ClaimRefs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ClaimRefs{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("relevant_claims: %w", err)
	}

	out := make(ClaimRefs, 0, len(raw))
	for _, el := range raw {
		el = bytes.TrimSpace(el)
		if len(el) > 0 && el[0] == '"' {
			var s string
			if err := json.Unmarshal(el, &s); err != nil {
				return fmt.Errorf("relevant_claims: %w", err)
			}
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(el, &n); err != nil {
			return fmt.Errorf("relevant_claims: element %s is neither string nor number", el)
		}
		out = append(out, n.String())
	}
	*r = out
	return nil
}

// ProductDetail is the assessment for one product.
type ProductDetail struct {
	ProductName            string    `json:"product_name"`
	InfringementLikelihood string    `json:"infringement_likelihood"`
	RelevantClaims         ClaimRefs `json:"relevant_claims"`
	Explanation            string    `json:"explanation"`
	SpecificFeatures       []string  `json:"specific_features"`
}

// normalize replaces nil lists with empty ones so they encode as [].
func (d *ProductDetail) normalize() {
	if d.RelevantClaims == nil {
		d.RelevantClaims = ClaimRefs{}
	}
	if d.SpecificFeatures == nil {
		d.SpecificFeatures = []string{}
	}
}

// Findings is the payload a model is asked to return.  It doubles as the
// source of the JSON Schema embedded in the prompt.
type Findings struct {
	TopInfringingProducts []ProductDetail `json:"top_infringing_products" jsonschema:"description=Products that potentially infringe, most likely first"`
	OverallRiskAssessment string          `json:"overall_risk_assessment" jsonschema:"description=Short summary of the overall infringement risk"`
}

// Analysis is one stored infringement assessment.  PatentID holds a
// publication number and CompanyName a company name; neither is a hard
// foreign key.
type Analysis struct {
	ID                    uuid.UUID       `json:"analysis_id"`
	PatentID              string          `json:"patent_id"`
	CompanyName           string          `json:"company_name"`
	AnalysisDate          time.Time       `json:"analysis_date"`
	TopInfringingProducts []ProductDetail `json:"top_infringing_products"`
	OverallRiskAssessment string          `json:"overall_risk_assessment"`
	Explanation           *string         `json:"explanation,omitempty"`
	CreatedAt             time.Time       `json:"-"`
}

// NewAnalysis returns an Analysis with the stored defaults applied.
func NewAnalysis(id uuid.UUID, patentID, companyName string, date time.Time) *Analysis {
	return &Analysis{
		ID:                    id,
		PatentID:              patentID,
		CompanyName:           companyName,
		AnalysisDate:          date,
		TopInfringingProducts: []ProductDetail{},
		OverallRiskAssessment: DefaultRiskAssessment,
	}
}

// ApplyFindings copies f onto a.  Missing lists become empty; a missing
// assessment becomes "".
func (a *Analysis) ApplyFindings(f Findings) {
	products := f.TopInfringingProducts
	if products == nil {
		products = []ProductDetail{}
	}
	for i := range products {
		products[i].normalize()
	}
	a.TopInfringingProducts = products
	a.OverallRiskAssessment = f.OverallRiskAssessment
}

// Degrade resets a to the fallback result, keeping its identity fields.
func (a *Analysis) Degrade() {
	a.TopInfringingProducts = []ProductDetail{}
	a.OverallRiskAssessment = DegradedRiskAssessment
}

// IsDegraded reports whether a carries the fallback assessment.
func (a *Analysis) IsDegraded() bool {
	return a.OverallRiskAssessment == DegradedRiskAssessment
}

//Personal.AI order the ending
