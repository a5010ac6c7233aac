// Package store groups the per-entity repositories behind a unit of work.
package store

import (
	"context"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/user"
)

// Repositories exposes every entity repository.  Within WithTx all of them
// share one transaction.
type Repositories interface {
	Companies() company.Repository
	Patents() patent.Repository
	Analyses() infringement.Repository
	Users() user.Repository
	Items() user.ItemRepository
	SeedMarkers() seed.MarkerRepository
}

// Store is the entry point to persistence.
type Store interface {
	Repositories

	// WithTx runs fn inside a transaction.  A non-nil error from fn rolls
	// back every write fn made; otherwise the transaction commits.
	WithTx(ctx context.Context, fn func(tx Repositories) error) error
}

//Personal.AI order the ending
