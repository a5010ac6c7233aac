package patent

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

// Column limits, in characters.
const (
	MaxPublicationNumberLength = 50
	MaxTitleLength             = 255
	MaxAssigneeLength          = 255
)

// Record is a loosely typed entry in a structured list attribute such as
// inventors or citations.
type Record = map[string]any

// Patent is a published patent document.  PublicationNumber is the natural
// key; infringement analyses refer to it by that value.
type Patent struct {
	ID                  uuid.UUID  `json:"id"`
	PublicationNumber   string     `json:"publication_number"`
	Title               string     `json:"title"`
	AISummary           *string    `json:"ai_summary"`
	RawSourceURL        *string    `json:"raw_source_url"`
	Assignee            *string    `json:"assignee"`
	Abstract            *string    `json:"abstract"`
	Description         *string    `json:"description"`
	PriorityDate        *time.Time `json:"priority_date"`
	ApplicationDate     *time.Time `json:"application_date"`
	GrantDate           *time.Time `json:"grant_date"`
	PublishDate         *time.Time `json:"publish_date"`
	Jurisdictions       *string    `json:"jurisdictions"`
	Classifications     *string    `json:"classifications"`
	CitationsNonPatent  *string    `json:"citations_non_patent"`
	ProvenanceName      *string    `json:"provenance_name"`
	ProvenanceCreatedAt *time.Time `json:"provenance_created_at"`
	ProvenanceUpdatedAt *time.Time `json:"provenance_updated_at"`

	Claims            Claims             `json:"claims"`
	Inventors         TextOrList[Record] `json:"inventors"`
	Citations         TextOrList[Record] `json:"citations"`
	ApplicationEvents TextOrList[Record] `json:"application_events"`
	ImageURLs         TextOrList[string] `json:"image_urls"`
	Landscapes        TextOrList[string] `json:"landscapes"`
	AttachmentURLs    TextOrList[string] `json:"attachment_urls"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPatent validates the natural key and title and returns a Patent with a
// fresh id.
func NewPatent(publicationNumber, title string) (*Patent, error) {
	p := &Patent{
		ID:                uuid.New(),
		PublicationNumber: strings.TrimSpace(publicationNumber),
		Title:             strings.TrimSpace(title),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields and column limits.
func (p *Patent) Validate() error {
	if p.PublicationNumber == "" {
		return errors.New(errors.ErrCodePatentInvalid, "publication_number is required")
	}
	if p.Title == "" {
		return errors.New(errors.ErrCodePatentInvalid, "title is required")
	}
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"publication_number", p.PublicationNumber, MaxPublicationNumberLength},
		{"title", p.Title, MaxTitleLength},
		{"assignee", deref(p.Assignee), MaxAssigneeLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return errors.Newf(errors.ErrCodePatentInvalid, "%s exceeds %d characters", l.field, l.max)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizedClaims returns the claims as a list regardless of stored shape.
func (p *Patent) NormalizedClaims() []Claim {
	return NormalizeClaims(p.Claims)
}

// AbstractText returns the abstract or "".
func (p *Patent) AbstractText() string {
	return deref(p.Abstract)
}

//Personal.AI order the ending
