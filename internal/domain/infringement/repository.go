package infringement

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Repository defines the persistence contract for analyses.  Analyses are
// append-only; repeated checks of the same pair create new rows.
type Repository interface {
	// List orders by analysis date, newest first, then by id.
	List(ctx context.Context, page common.PageRequest) ([]*Analysis, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Insert(ctx context.Context, a *Analysis) error
}

//Personal.AI order the ending
