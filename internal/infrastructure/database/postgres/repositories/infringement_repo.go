package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const analysisColumns = `id, patent_id, company_name, analysis_date, top_infringing_products,
	overall_risk_assessment, explanation, created_at`

type postgresAnalysisRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresAnalysisRepo returns an infringement.Repository running on
// executor.
func NewPostgresAnalysisRepo(executor queryExecutor, log logging.Logger) infringement.Repository {
	return &postgresAnalysisRepo{log: log, executor: executor}
}

func (r *postgresAnalysisRepo) List(ctx context.Context, page common.PageRequest) ([]*infringement.Analysis, int64, error) {
	return listPage(ctx, r.executor,
		`SELECT count(*) FROM infringement_analyses`,
		`SELECT `+analysisColumns+` FROM infringement_analyses ORDER BY analysis_date DESC, id LIMIT $1 OFFSET $2`,
		page, scanAnalysis, "infringement analyses")
}

func (r *postgresAnalysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*infringement.Analysis, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM infringement_analyses WHERE id = $1`, id)
	a, err := scanAnalysis(row)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeAnalysisNotFound, "Analysis not found", "failed to get infringement analysis")
	}
	return a, nil
}

func (r *postgresAnalysisRepo) Insert(ctx context.Context, a *infringement.Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	products, err := jsonArg(a.TopInfringingProducts)
	if err != nil {
		return err
	}

	err = r.executor.QueryRowContext(ctx, `
		INSERT INTO infringement_analyses (
			id, patent_id, company_name, analysis_date, top_infringing_products,
			overall_risk_assessment, explanation
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		a.ID, a.PatentID, a.CompanyName, a.AnalysisDate, products, a.OverallRiskAssessment, a.Explanation,
	).Scan(&a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrap(err, errors.ErrCodeConflict, "infringement analysis already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert infringement analysis")
	}
	return nil
}

func scanAnalysis(s scanner) (*infringement.Analysis, error) {
	var (
		a        infringement.Analysis
		products []byte
	)
	if err := s.Scan(
		&a.ID, &a.PatentID, &a.CompanyName, &a.AnalysisDate, &products,
		&a.OverallRiskAssessment, &a.Explanation, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.TopInfringingProducts = []infringement.ProductDetail{}
	if err := decodeJSON(products, &a.TopInfringingProducts, "infringement_analyses.top_infringing_products"); err != nil {
		return nil, err
	}
	return &a, nil
}

//Personal.AI order the ending
