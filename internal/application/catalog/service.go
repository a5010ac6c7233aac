// Package catalog serves the read-only listings and lookups behind the API.
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

// Service lists and fetches stored entities.  Every List normalizes page
// before reaching the store.
type Service interface {
	ListCompanies(ctx context.Context, page common.PageRequest) (common.ListResult[*company.Company], error)
	// GetCompany accepts a UUID or, failing that, a company name.
	GetCompany(ctx context.Context, ref string) (*company.Company, error)

	ListPatents(ctx context.Context, page common.PageRequest) (common.ListResult[*patent.Patent], error)
	// GetPatent accepts a UUID or, failing that, a publication number.
	GetPatent(ctx context.Context, ref string) (*patent.Patent, error)

	ListAnalyses(ctx context.Context, page common.PageRequest) (common.ListResult[*infringement.Analysis], error)
	GetAnalysis(ctx context.Context, ref string) (*infringement.Analysis, error)

	ListUsers(ctx context.Context, page common.PageRequest) (common.ListResult[*user.User], error)
	GetUser(ctx context.Context, ref string) (*user.User, error)

	ListItems(ctx context.Context, page common.PageRequest) (common.ListResult[*user.Item], error)
	GetItem(ctx context.Context, ref string) (*user.Item, error)
}

type serviceImpl struct {
	store  store.Repositories
	logger logging.Logger
}

// NewService returns a Service over st.
func NewService(st store.Repositories, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{store: st, logger: logger.Named("catalog")}
}

func list[T any](ctx context.Context, page common.PageRequest, fn func(context.Context, common.PageRequest) ([]T, int64, error)) (common.ListResult[T], error) {
	items, total, err := fn(ctx, page.Normalize())
	if err != nil {
		return common.ListResult[T]{}, err
	}
	return common.NewListResult(items, total), nil
}

func (s *serviceImpl) ListCompanies(ctx context.Context, page common.PageRequest) (common.ListResult[*company.Company], error) {
	return list(ctx, page, s.store.Companies().List)
}

func (s *serviceImpl) GetCompany(ctx context.Context, ref string) (*company.Company, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return s.store.Companies().GetByID(ctx, id)
	}
	if ref == "" {
		return nil, errors.New(errors.ErrCodeCompanyNotFound, "Company not found")
	}
	return s.store.Companies().GetByName(ctx, ref)
}

func (s *serviceImpl) ListPatents(ctx context.Context, page common.PageRequest) (common.ListResult[*patent.Patent], error) {
	return list(ctx, page, s.store.Patents().List)
}

func (s *serviceImpl) GetPatent(ctx context.Context, ref string) (*patent.Patent, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return s.store.Patents().GetByID(ctx, id)
	}
	if ref == "" {
		return nil, errors.New(errors.ErrCodePatentNotFound, "Patent not found")
	}
	return s.store.Patents().GetByPublicationNumber(ctx, ref)
}

func (s *serviceImpl) ListAnalyses(ctx context.Context, page common.PageRequest) (common.ListResult[*infringement.Analysis], error) {
	return list(ctx, page, s.store.Analyses().List)
}

func (s *serviceImpl) GetAnalysis(ctx context.Context, ref string) (*infringement.Analysis, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, errors.New(errors.ErrCodeAnalysisNotFound, "Analysis not found")
	}
	return s.store.Analyses().GetByID(ctx, id)
}

func (s *serviceImpl) ListUsers(ctx context.Context, page common.PageRequest) (common.ListResult[*user.User], error) {
	return list(ctx, page, s.store.Users().List)
}

func (s *serviceImpl) GetUser(ctx context.Context, ref string) (*user.User, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, errors.New(errors.ErrCodeUserNotFound, "User not found")
	}
	return s.store.Users().GetByID(ctx, id)
}

func (s *serviceImpl) ListItems(ctx context.Context, page common.PageRequest) (common.ListResult[*user.Item], error) {
	return list(ctx, page, s.store.Items().List)
}

func (s *serviceImpl) GetItem(ctx context.Context, ref string) (*user.Item, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, errors.New(errors.ErrCodeItemNotFound, "Item not found")
	}
	return s.store.Items().GetByID(ctx, id)
}

//Personal.AI order the ending
