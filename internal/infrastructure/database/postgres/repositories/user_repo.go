package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const userColumns = `id, email, full_name, is_active, is_superuser, hashed_password`

type postgresUserRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresUserRepo returns a user.Repository running on executor.
func NewPostgresUserRepo(executor queryExecutor, log logging.Logger) user.Repository {
	return &postgresUserRepo{log: log, executor: executor}
}

func (r *postgresUserRepo) List(ctx context.Context, page common.PageRequest) ([]*user.User, int64, error) {
	return listPage(ctx, r.executor,
		`SELECT count(*) FROM users`,
		`SELECT `+userColumns+` FROM users ORDER BY email LIMIT $1 OFFSET $2`,
		page, scanUser, "users")
}

func (r *postgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeUserNotFound, "User not found", "failed to get user")
	}
	return u, nil
}

func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeUserNotFound, "User not found", "failed to get user")
	}
	return u, nil
}

func (r *postgresUserRepo) Insert(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := r.executor.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, is_active, is_superuser, hashed_password)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.FullName, u.IsActive, u.IsSuperuser, u.HashedPassword,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrap(err, errors.ErrCodeConflict, "email already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert user")
	}
	return nil
}

func scanUser(s scanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.IsSuperuser, &u.HashedPassword); err != nil {
		return nil, err
	}
	return &u, nil
}

//Personal.AI order the ending
