package client

import (
	"encoding/json"
	"time"
)

// ListOptions selects a window of a listing.  Zero values use the server
// defaults (skip 0, limit 100).
type ListOptions struct {
	Skip  int
	Limit int
}

// List is the envelope of every list endpoint.  Count is the total number
// of rows, not len(Data).
type List[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

// Product is one product a company sells.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Company is a company and its product catalog.
type Company struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// Patent is a stored patent.  The string-or-list fields are left raw; they
// hold either a JSON string or a JSON array depending on the source data.
type Patent struct {
	ID                string     `json:"id"`
	PublicationNumber string     `json:"publication_number"`
	Title             string     `json:"title"`
	AISummary         *string    `json:"ai_summary"`
	RawSourceURL      *string    `json:"raw_source_url"`
	Assignee          *string    `json:"assignee"`
	Abstract          *string    `json:"abstract"`
	Description       *string    `json:"description"`
	PriorityDate      *time.Time `json:"priority_date"`
	ApplicationDate   *time.Time `json:"application_date"`
	GrantDate         *time.Time `json:"grant_date"`
	PublishDate       *time.Time `json:"publish_date"`
	Jurisdictions     *string    `json:"jurisdictions"`
	Classifications   *string    `json:"classifications"`

	Claims            json.RawMessage `json:"claims,omitempty"`
	Inventors         json.RawMessage `json:"inventors,omitempty"`
	Citations         json.RawMessage `json:"citations,omitempty"`
	ApplicationEvents json.RawMessage `json:"application_events,omitempty"`
	ImageURLs         json.RawMessage `json:"image_urls,omitempty"`
	Landscapes        json.RawMessage `json:"landscapes,omitempty"`
	AttachmentURLs    json.RawMessage `json:"attachment_urls,omitempty"`
}

// ProductDetail is the assessment of one product.
type ProductDetail struct {
	ProductName            string   `json:"product_name"`
	InfringementLikelihood string   `json:"infringement_likelihood"`
	RelevantClaims         []string `json:"relevant_claims"`
	Explanation            string   `json:"explanation"`
	SpecificFeatures       []string `json:"specific_features"`
}

// Analysis is a stored infringement analysis.
type Analysis struct {
	ID                    string          `json:"analysis_id"`
	PatentID              string          `json:"patent_id"`
	CompanyName           string          `json:"company_name"`
	AnalysisDate          time.Time       `json:"analysis_date"`
	TopInfringingProducts []ProductDetail `json:"top_infringing_products"`
	OverallRiskAssessment string          `json:"overall_risk_assessment"`
	Explanation           *string         `json:"explanation,omitempty"`
}

// CheckRequest is the body of POST /infringement/check.
type CheckRequest struct {
	PatentID    string `json:"patent_id"`
	CompanyName string `json:"company_name"`
}

//Personal.AI order the ending
