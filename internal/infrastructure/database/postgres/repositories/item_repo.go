package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const itemColumns = `id, title, description, owner_id`

type postgresItemRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresItemRepo returns a user.ItemRepository running on executor.
func NewPostgresItemRepo(executor queryExecutor, log logging.Logger) user.ItemRepository {
	return &postgresItemRepo{log: log, executor: executor}
}

func (r *postgresItemRepo) List(ctx context.Context, page common.PageRequest) ([]*user.Item, int64, error) {
	return listPage(ctx, r.executor,
		`SELECT count(*) FROM items`,
		`SELECT `+itemColumns+` FROM items ORDER BY title, id LIMIT $1 OFFSET $2`,
		page, scanItem, "items")
}

func (r *postgresItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.Item, error) {
	it, err := scanItem(r.executor.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeItemNotFound, "Item not found", "failed to get item")
	}
	return it, nil
}

func (r *postgresItemRepo) Insert(ctx context.Context, it *user.Item) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	_, err := r.executor.ExecContext(ctx,
		`INSERT INTO items (id, title, description, owner_id) VALUES ($1, $2, $3, $4)`,
		it.ID, it.Title, it.Description, it.OwnerID,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert item")
	}
	return nil
}

func scanItem(s scanner) (*user.Item, error) {
	var it user.Item
	if err := s.Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID); err != nil {
		return nil, err
	}
	return &it, nil
}

//Personal.AI order the ending
