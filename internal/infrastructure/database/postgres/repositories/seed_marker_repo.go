package repositories

import (
	"context"

	"github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

type postgresSeedMarkerRepo struct {
	executor queryExecutor
}

// NewPostgresSeedMarkerRepo returns a seed.MarkerRepository running on
// executor.
func NewPostgresSeedMarkerRepo(executor queryExecutor) seed.MarkerRepository {
	return &postgresSeedMarkerRepo{executor: executor}
}

func (r *postgresSeedMarkerRepo) Get(ctx context.Context, source seed.Source) (*seed.Marker, error) {
	var m seed.Marker
	err := r.executor.QueryRowContext(ctx,
		`SELECT source, record_count, loaded_at FROM seed_markers WHERE source = $1`, string(source),
	).Scan(&m.Source, &m.RecordCount, &m.LoadedAt)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeNotFound, "seed marker not found", "failed to get seed marker")
	}
	return &m, nil
}

func (r *postgresSeedMarkerRepo) Put(ctx context.Context, m *seed.Marker) error {
	_, err := r.executor.ExecContext(ctx, `
		INSERT INTO seed_markers (source, record_count, loaded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (source) DO UPDATE
		SET record_count = EXCLUDED.record_count, loaded_at = EXCLUDED.loaded_at`,
		string(m.Source), m.RecordCount, m.LoadedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to write seed marker")
	}
	return nil
}

//Personal.AI order the ending
