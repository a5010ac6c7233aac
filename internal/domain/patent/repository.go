package patent

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Repository defines the persistence contract for patents.
type Repository interface {
	// List returns one page ordered by publication number plus the total.
	List(ctx context.Context, page common.PageRequest) ([]*Patent, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patent, error)
	GetByPublicationNumber(ctx context.Context, number string) (*Patent, error)
	// Insert reports false when the publication number is already stored.
	Insert(ctx context.Context, p *Patent) (bool, error)
}

//Personal.AI order the ending
