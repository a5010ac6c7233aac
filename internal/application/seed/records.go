package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// AnalysisDateLayout is the only accepted analysis_date format.
const AnalysisDateLayout = "2006-01-02"

// errSkip marks a record that is logged at warn and skipped.
type errSkip struct{ reason string }

func (e errSkip) Error() string { return e.reason }

// errBadDate marks a record skipped because of an unparseable date.  It is
// logged at error level.
type errBadDate struct{ err error }

func (e errBadDate) Error() string { return e.err.Error() }

// decodeList splits a JSON list into its elements, each of which must be an
// object.
func decodeList(raw []byte, what string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSeedDocumentInvalid,
			fmt.Sprintf("expected %s data to be a list of objects", what))
	}
	for i, it := range items {
		if !isObject(it) {
			return nil, errors.Newf(errors.ErrCodeSeedDocumentInvalid,
				"each %s entry should be an object (entry %d)", what, i)
		}
	}
	return items, nil
}

// decodeCompaniesDocument accepts a bare list or {"companies": [...]}.
func decodeCompaniesDocument(raw []byte) ([]json.RawMessage, error) {
	if isObject(raw) {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSeedDocumentInvalid, "companies document is not valid JSON")
		}
		inner, ok := wrapped["companies"]
		if !ok {
			return nil, errors.New(errors.ErrCodeSeedDocumentInvalid, "companies object has no companies key")
		}
		raw = inner
	}
	return decodeList(raw, "company")
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

type companyRecord struct {
	Name     string            `json:"name"`
	Products []company.Product `json:"products"`
}

func parseCompany(raw json.RawMessage) (*company.Company, error) {
	var rec companyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errSkip{reason: "malformed company entry: " + err.Error()}
	}
	if strings.TrimSpace(rec.Name) == "" {
		return nil, errSkip{reason: "missing 'name' field"}
	}
	if len(rec.Products) == 0 {
		return nil, errSkip{reason: "missing 'products' field"}
	}
	c, err := company.NewCompany(rec.Name, rec.Products)
	if err != nil {
		return nil, errSkip{reason: err.Error()}
	}
	return c, nil
}

// provenance is either a bare name or {name, created_at, updated_at}.
type provenance struct {
	Name      *string
	CreatedAt string
	UpdatedAt string
}

func (p *provenance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Name = &s
		return nil
	}
	var obj struct {
		Name      *string `json:"name"`
		CreatedAt string  `json:"created_at"`
		UpdatedAt string  `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("provenance: %w", err)
	}
	p.Name, p.CreatedAt, p.UpdatedAt = obj.Name, obj.CreatedAt, obj.UpdatedAt
	return nil
}

type patentRecord struct {
	PublicationNumber  string  `json:"publication_number"`
	Title              string  `json:"title"`
	AISummary          *string `json:"ai_summary"`
	RawSourceURL       *string `json:"raw_source_url"`
	Assignee           *string `json:"assignee"`
	Abstract           *string `json:"abstract"`
	Description        *string `json:"description"`
	PriorityDate       string  `json:"priority_date"`
	ApplicationDate    string  `json:"application_date"`
	GrantDate          string  `json:"grant_date"`
	PublishDate        string  `json:"publish_date"`
	Jurisdictions      *string `json:"jurisdictions"`
	Classifications    *string `json:"classifications"`
	CitationsNonPatent *string `json:"citations_non_patent"`

	Provenance provenance `json:"provenance"`

	Claims            patent.Claims                    `json:"claims"`
	Inventors         patent.TextOrList[patent.Record] `json:"inventors"`
	Citations         patent.TextOrList[patent.Record] `json:"citations"`
	ApplicationEvents patent.TextOrList[patent.Record] `json:"application_events"`
	ImageURLs         patent.TextOrList[string]        `json:"image_urls"`
	Landscapes        patent.TextOrList[string]        `json:"landscapes"`
	AttachmentURLs    patent.TextOrList[string]        `json:"attachment_urls"`
}

func parsePatent(raw json.RawMessage) (*patent.Patent, error) {
	var rec patentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errSkip{reason: "malformed patent entry: " + err.Error()}
	}
	if strings.TrimSpace(rec.PublicationNumber) == "" || strings.TrimSpace(rec.Title) == "" {
		return nil, errSkip{reason: "missing required fields"}
	}
	p, err := patent.NewPatent(rec.PublicationNumber, rec.Title)
	if err != nil {
		return nil, errSkip{reason: err.Error()}
	}

	dates := []struct {
		src string
		dst **time.Time
	}{
		{rec.PriorityDate, &p.PriorityDate},
		{rec.ApplicationDate, &p.ApplicationDate},
		{rec.GrantDate, &p.GrantDate},
		{rec.PublishDate, &p.PublishDate},
		{rec.Provenance.CreatedAt, &p.ProvenanceCreatedAt},
		{rec.Provenance.UpdatedAt, &p.ProvenanceUpdatedAt},
	}
	for _, d := range dates {
		t, err := patent.ParseDate(d.src)
		if err != nil {
			return nil, errBadDate{err: err}
		}
		*d.dst = t
	}

	p.AISummary = rec.AISummary
	p.RawSourceURL = rec.RawSourceURL
	p.Assignee = rec.Assignee
	p.Abstract = rec.Abstract
	p.Description = rec.Description
	p.Jurisdictions = rec.Jurisdictions
	p.Classifications = rec.Classifications
	p.CitationsNonPatent = rec.CitationsNonPatent
	p.ProvenanceName = rec.Provenance.Name
	p.Claims = rec.Claims
	p.Inventors = rec.Inventors
	p.Citations = rec.Citations
	p.ApplicationEvents = rec.ApplicationEvents
	p.ImageURLs = rec.ImageURLs
	p.Landscapes = rec.Landscapes
	p.AttachmentURLs = rec.AttachmentURLs
	if err := p.Validate(); err != nil {
		return nil, errSkip{reason: err.Error()}
	}
	return p, nil
}

type analysisRecord struct {
	CompanyName           string                       `json:"company_name"`
	PatentID              string                       `json:"patent_id"`
	AnalysisDate          string                       `json:"analysis_date"`
	TopInfringingProducts []infringement.ProductDetail `json:"top_infringing_products"`
	OverallRiskAssessment string                       `json:"overall_risk_assessment"`
	Explanation           *string                      `json:"explanation"`
}

func parseAnalysis(raw json.RawMessage, now time.Time) (*infringement.Analysis, error) {
	var rec analysisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errSkip{reason: "malformed infringement analysis entry: " + err.Error()}
	}
	if rec.CompanyName == "" {
		return nil, errSkip{reason: "missing 'company_name' field"}
	}
	if rec.PatentID == "" {
		return nil, errSkip{reason: "missing 'patent_id' field"}
	}
	if utf8.RuneCountInString(rec.PatentID) > infringement.MaxPatentIDLength {
		return nil, errSkip{reason: fmt.Sprintf("'patent_id' exceeds %d characters", infringement.MaxPatentIDLength)}
	}
	if utf8.RuneCountInString(rec.CompanyName) > infringement.MaxCompanyNameLength {
		return nil, errSkip{reason: fmt.Sprintf("'company_name' exceeds %d characters", infringement.MaxCompanyNameLength)}
	}

	date := now
	if rec.AnalysisDate != "" {
		parsed, err := time.Parse(AnalysisDateLayout, rec.AnalysisDate)
		if err != nil {
			return nil, errBadDate{err: fmt.Errorf("invalid analysis_date %q: %w", rec.AnalysisDate, err)}
		}
		date = parsed.UTC()
	}

	a := infringement.NewAnalysis(uuid.New(), rec.PatentID, rec.CompanyName, date)
	a.ApplyFindings(infringement.Findings{
		TopInfringingProducts: rec.TopInfringingProducts,
		OverallRiskAssessment: rec.OverallRiskAssessment,
	})
	if a.OverallRiskAssessment == "" {
		a.OverallRiskAssessment = infringement.DefaultRiskAssessment
	}
	explanation := ""
	if rec.Explanation != nil {
		explanation = *rec.Explanation
	}
	a.Explanation = &explanation
	return a, nil
}

//Personal.AI order the ending
