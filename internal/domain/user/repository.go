package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Repository persists users.  List orders by email.
type Repository interface {
	List(ctx context.Context, page common.PageRequest) ([]*User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u *User) error
}

// ItemRepository persists items.  List orders by title then id.
type ItemRepository interface {
	List(ctx context.Context, page common.PageRequest) ([]*Item, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	Insert(ctx context.Context, it *Item) error
}

//Personal.AI order the ending
