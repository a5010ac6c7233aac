package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// queryExecutor abstracts sql.DB and sql.Tx
type queryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// mapRowError turns sql.ErrNoRows into a NotFound-family AppError and wraps
// everything else as a database error.
func mapRowError(err error, notFound errors.ErrorCode, notFoundMsg, op string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.New(notFound, notFoundMsg)
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeDatabaseError, op)
}

// listPage runs countQuery, then pageQuery with LIMIT/OFFSET bound to $1/$2.
// The count ignores the window so callers can page through the total.
func listPage[T any](
	ctx context.Context,
	exec queryExecutor,
	countQuery, pageQuery string,
	page common.PageRequest,
	scan func(scanner) (T, error),
	what string,
) ([]T, int64, error) {
	page = page.Normalize()

	var total int64
	if err := exec.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count "+what)
	}

	rows, err := exec.QueryContext(ctx, pageQuery, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list "+what)
	}
	defer rows.Close()

	out := make([]T, 0, page.Limit)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, mapRowError(err, errors.ErrCodeDatabaseError, "failed to scan "+what, "failed to scan "+what)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate "+what)
	}
	return out, total, nil
}

// jsonArg encodes v for a JSONB parameter.  nil slices are stored as [].
func jsonArg(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode json column")
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// decodeJSON decodes a JSONB column; NULL and empty leave dst untouched.
func decodeJSON(raw []byte, dst interface{}, column string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode "+column)
	}
	return nil
}

//Personal.AI order the ending
