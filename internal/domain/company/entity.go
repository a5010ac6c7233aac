package company

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

// MaxNameLength bounds the natural key in characters.
const MaxNameLength = 255

// Product is a single offering of a Company.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Company is the aggregate root for a product portfolio.  Name is the natural
// key and is unique across the store.
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Products  []Product `json:"products"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewCompany validates input and returns a Company with a fresh id.
func NewCompany(name string, products []Product) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidParam("company name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, errors.Newf(errors.ErrCodeValidation, "company name exceeds %d characters", MaxNameLength)
	}
	if len(products) == 0 {
		return nil, errors.InvalidParam("company products must not be empty")
	}
	return &Company{
		ID:       uuid.New(),
		Name:     name,
		Products: products,
	}, nil
}

// ProductNames returns product names in portfolio order.
func (c *Company) ProductNames() []string {
	names := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		names = append(names, p.Name)
	}
	return names
}

//Personal.AI order the ending
