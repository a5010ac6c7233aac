package company

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Repository defines the persistence contract for companies.
type Repository interface {
	// List returns one page ordered by name plus the total row count.
	List(ctx context.Context, page common.PageRequest) ([]*Company, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	// Insert reports false when a company with the same name already exists.
	Insert(ctx context.Context, c *Company) (bool, error)
}

//Personal.AI order the ending
