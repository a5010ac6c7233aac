package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/InfringeScope/pkg/errors"
	"github.com/turtacn/InfringeScope/pkg/types/common"
)

var patentCols = []string{
	"id", "publication_number", "title", "ai_summary", "raw_source_url", "assignee",
	"abstract", "description", "priority_date", "application_date", "grant_date", "publish_date",
	"jurisdictions", "classifications", "citations_non_patent",
	"provenance_name", "provenance_created_at", "provenance_updated_at",
	"claims", "inventors", "citations", "application_events", "image_urls", "landscapes", "attachment_urls",
	"created_at", "updated_at",
}

func patentRow(rows *sqlmock.Rows, id uuid.UUID, number string, claims string) *sqlmock.Rows {
	now := time.Now()
	grant := time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id.String(), number, "Shopping cart method", nil, nil, "Acme Corp",
		"An abstract", nil, nil, nil, grant, nil,
		"US", nil, nil,
		nil, nil, nil,
		[]byte(claims), []byte(`"Jane Doe"`), []byte(`[]`), nil, []byte(`["a.png"]`), []byte(`[]`), []byte(`[]`),
		now, now,
	)
}

type PatentRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo patent.Repository
}

func (s *PatentRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.Require().NoError(err)
	s.repo = NewPostgresPatentRepo(s.db, logging.NewNopLogger())
}

func (s *PatentRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *PatentRepoTestSuite) TestGetByPublicationNumber_ScansShapes() {
	id := uuid.New()
	s.mock.ExpectQuery(`FROM patents WHERE publication_number = \$1`).
		WithArgs("US-RE49889-E1").
		WillReturnRows(patentRow(sqlmock.NewRows(patentCols), id, "US-RE49889-E1", `[{"num":"001","text":"A method"}]`))

	p, err := s.repo.GetByPublicationNumber(context.Background(), "US-RE49889-E1")
	s.Require().NoError(err)

	s.Equal(id, p.ID)
	s.Equal("Acme Corp", *p.Assignee)
	s.Nil(p.AISummary)
	s.Require().NotNil(p.GrantDate)
	s.Equal(2022, p.GrantDate.Year())
	s.Equal([]patent.Claim{{Num: "001", Text: "A method"}}, p.NormalizedClaims())
	s.True(p.Inventors.IsText())
	s.Equal("Jane Doe", p.Inventors.Text())
	s.True(p.ApplicationEvents.IsEmpty())
	s.Equal([]string{"a.png"}, p.ImageURLs.Items())
}

func (s *PatentRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	s.mock.ExpectQuery(`FROM patents WHERE id = \$1`).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := s.repo.GetByID(context.Background(), id)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodePatentNotFound))

	var appErr *pkgerrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal("Patent not found", appErr.Message)
}

func (s *PatentRepoTestSuite) TestList_OrderedByPublicationNumber() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM patents`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows(patentCols)
	patentRow(rows, uuid.New(), "US-1", `"1. A widget"`)
	patentRow(rows, uuid.New(), "US-2", `[]`)
	s.mock.ExpectQuery(`FROM patents ORDER BY publication_number LIMIT \$1 OFFSET \$2`).
		WithArgs(common.DefaultLimit, 0).
		WillReturnRows(rows)

	items, total, err := s.repo.List(context.Background(), common.PageRequest{})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(items, 2)
	s.Equal([]patent.Claim{{Text: "1. A widget"}}, items[0].NormalizedClaims())
}

func (s *PatentRepoTestSuite) TestInsert_DuplicateIsNoop() {
	p, err := patent.NewPatent("US-1", "Widget")
	s.Require().NoError(err)

	s.mock.ExpectQuery(`INSERT INTO patents .* ON CONFLICT \(publication_number\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	inserted, err := s.repo.Insert(context.Background(), p)
	s.NoError(err)
	s.False(inserted)
}

func (s *PatentRepoTestSuite) TestInsert_DatabaseError() {
	p, err := patent.NewPatent("US-1", "Widget")
	s.Require().NoError(err)

	s.mock.ExpectQuery(`INSERT INTO patents`).WillReturnError(errors.New("disk full"))

	_, err = s.repo.Insert(context.Background(), p)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func TestPatentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PatentRepoTestSuite))
}

//Personal.AI order the ending
