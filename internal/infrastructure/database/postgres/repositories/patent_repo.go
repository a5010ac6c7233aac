package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const patentColumns = `id, publication_number, title, ai_summary, raw_source_url, assignee,
	abstract, description, priority_date, application_date, grant_date, publish_date,
	jurisdictions, classifications, citations_non_patent,
	provenance_name, provenance_created_at, provenance_updated_at,
	claims, inventors, citations, application_events, image_urls, landscapes, attachment_urls,
	created_at, updated_at`

type postgresPatentRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresPatentRepo returns a patent.Repository running on executor.
func NewPostgresPatentRepo(executor queryExecutor, log logging.Logger) patent.Repository {
	return &postgresPatentRepo{log: log, executor: executor}
}

func (r *postgresPatentRepo) List(ctx context.Context, page common.PageRequest) ([]*patent.Patent, int64, error) {
	return listPage(ctx, r.executor,
		`SELECT count(*) FROM patents`,
		`SELECT `+patentColumns+` FROM patents ORDER BY publication_number LIMIT $1 OFFSET $2`,
		page, scanPatent, "patents")
}

func (r *postgresPatentRepo) GetByID(ctx context.Context, id uuid.UUID) (*patent.Patent, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+patentColumns+` FROM patents WHERE id = $1`, id)
	p, err := scanPatent(row)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodePatentNotFound, "Patent not found", "failed to get patent")
	}
	return p, nil
}

func (r *postgresPatentRepo) GetByPublicationNumber(ctx context.Context, number string) (*patent.Patent, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+patentColumns+` FROM patents WHERE publication_number = $1`, number)
	p, err := scanPatent(row)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodePatentNotFound, "Patent not found", "failed to get patent")
	}
	return p, nil
}

func (r *postgresPatentRepo) Insert(ctx context.Context, p *patent.Patent) (bool, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.executor.QueryRowContext(ctx, `
		INSERT INTO patents (
			id, publication_number, title, ai_summary, raw_source_url, assignee,
			abstract, description, priority_date, application_date, grant_date, publish_date,
			jurisdictions, classifications, citations_non_patent,
			provenance_name, provenance_created_at, provenance_updated_at,
			claims, inventors, citations, application_events, image_urls, landscapes, attachment_urls
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (publication_number) DO NOTHING
		RETURNING created_at, updated_at`,
		p.ID, p.PublicationNumber, p.Title, p.AISummary, p.RawSourceURL, p.Assignee,
		p.Abstract, p.Description, p.PriorityDate, p.ApplicationDate, p.GrantDate, p.PublishDate,
		p.Jurisdictions, p.Classifications, p.CitationsNonPatent,
		p.ProvenanceName, p.ProvenanceCreatedAt, p.ProvenanceUpdatedAt,
		p.Claims, p.Inventors, p.Citations, p.ApplicationEvents, p.ImageURLs, p.Landscapes, p.AttachmentURLs,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if stderrors.Is(err, sql.ErrNoRows) {
		r.log.Debug("Patent already exists", logging.String("publication_number", p.PublicationNumber))
		return false, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return false, errors.Wrap(err, errors.ErrCodePatentAlreadyExists, "patent already exists")
		}
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert patent")
	}
	return true, nil
}

func scanPatent(s scanner) (*patent.Patent, error) {
	var p patent.Patent
	err := s.Scan(
		&p.ID, &p.PublicationNumber, &p.Title, &p.AISummary, &p.RawSourceURL, &p.Assignee,
		&p.Abstract, &p.Description, &p.PriorityDate, &p.ApplicationDate, &p.GrantDate, &p.PublishDate,
		&p.Jurisdictions, &p.Classifications, &p.CitationsNonPatent,
		&p.ProvenanceName, &p.ProvenanceCreatedAt, &p.ProvenanceUpdatedAt,
		&p.Claims, &p.Inventors, &p.Citations, &p.ApplicationEvents, &p.ImageURLs, &p.Landscapes, &p.AttachmentURLs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

//Personal.AI order the ending
