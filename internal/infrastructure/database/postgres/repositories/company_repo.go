package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

const companyColumns = `id, name, products, created_at, updated_at`

type postgresCompanyRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresCompanyRepo returns a company.Repository running on executor.
func NewPostgresCompanyRepo(executor queryExecutor, log logging.Logger) company.Repository {
	return &postgresCompanyRepo{log: log, executor: executor}
}

func (r *postgresCompanyRepo) List(ctx context.Context, page common.PageRequest) ([]*company.Company, int64, error) {
	return listPage(ctx, r.executor,
		`SELECT count(*) FROM companies`,
		`SELECT `+companyColumns+` FROM companies ORDER BY name LIMIT $1 OFFSET $2`,
		page, scanCompany, "companies")
}

func (r *postgresCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeCompanyNotFound, "Company not found", "failed to get company")
	}
	return c, nil
}

func (r *postgresCompanyRepo) GetByName(ctx context.Context, name string) (*company.Company, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
	c, err := scanCompany(row)
	if err != nil {
		return nil, mapRowError(err, errors.ErrCodeCompanyNotFound, "Company not found", "failed to get company")
	}
	return c, nil
}

func (r *postgresCompanyRepo) Insert(ctx context.Context, c *company.Company) (bool, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	products, err := jsonArg(c.Products)
	if err != nil {
		return false, err
	}

	err = r.executor.QueryRowContext(ctx, `
		INSERT INTO companies (id, name, products)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING created_at, updated_at`,
		c.ID, c.Name, products,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if stderrors.Is(err, sql.ErrNoRows) {
		r.log.Debug("Company already exists", logging.String("name", c.Name))
		return false, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return false, errors.Wrap(err, errors.ErrCodeCompanyAlreadyExists, "company already exists")
		}
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert company")
	}
	return true, nil
}

func scanCompany(s scanner) (*company.Company, error) {
	var (
		c        company.Company
		products []byte
	)
	if err := s.Scan(&c.ID, &c.Name, &products, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Products = []company.Product{}
	if err := decodeJSON(products, &c.Products, "companies.products"); err != nil {
		return nil, err
	}
	return &c, nil
}

//Personal.AI order the ending
