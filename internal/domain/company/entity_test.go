package company

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

func TestNewCompany(t *testing.T) {
	c, err := NewCompany("  Walmart Inc. ", []Product{{Name: "Quick Add to Cart", Description: "one tap"}})
	require.NoError(t, err)
	assert.Equal(t, "Walmart Inc.", c.Name)
	assert.NotEqual(t, [16]byte{}, [16]byte(c.ID))
	assert.Equal(t, []string{"Quick Add to Cart"}, c.ProductNames())
}

func TestNewCompany_Invalid(t *testing.T) {
	_, err := NewCompany("", []Product{{Name: "x"}})
	assert.True(t, errors.IsValidation(err))

	_, err = NewCompany("Acme", nil)
	assert.True(t, errors.IsValidation(err))

	_, err = NewCompany(strings.Repeat("a", MaxNameLength+1), []Product{{Name: "x"}})
	assert.True(t, errors.IsValidation(err))

	c, err := NewCompany(strings.Repeat("é", MaxNameLength), []Product{{Name: "x"}})
	require.NoError(t, err)
	assert.Equal(t, MaxNameLength, len([]rune(c.Name)))
}

//Personal.AI order the ending
