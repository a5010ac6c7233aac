package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/InfringeScope/pkg/errors"
)

type StoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	db    *sql.DB
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.Require().NoError(err)
	s.store = NewStore(postgres.NewConnectionWithDB(s.db, logging.NewNopLogger()), nil)
}

func (s *StoreTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *StoreTestSuite) TestWithTx_CommitsDataAndMarker() {
	now := time.Now()
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO companies`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	s.mock.ExpectExec(`INSERT INTO seed_markers .* ON CONFLICT \(source\) DO UPDATE`).
		WithArgs("companies", 1, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.store.WithTx(context.Background(), func(tx store.Repositories) error {
		if _, err := tx.Companies().Insert(context.Background(), &company.Company{Name: "Acme"}); err != nil {
			return err
		}
		return tx.SeedMarkers().Put(context.Background(), &seed.Marker{Source: seed.SourceCompanies, RecordCount: 1, LoadedAt: now})
	})
	s.NoError(err)
}

func (s *StoreTestSuite) TestWithTx_RollsBackOnError() {
	boom := errors.New("document invalid")
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO companies`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
	s.mock.ExpectRollback()

	err := s.store.WithTx(context.Background(), func(tx store.Repositories) error {
		if _, err := tx.Companies().Insert(context.Background(), &company.Company{Name: "Acme"}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
}

func (s *StoreTestSuite) TestWithTx_NestedJoinsOuter() {
	s.mock.ExpectBegin()
	s.mock.ExpectCommit()

	calls := 0
	err := s.store.WithTx(context.Background(), func(tx store.Repositories) error {
		return tx.(*Store).WithTx(context.Background(), func(store.Repositories) error {
			calls++
			return nil
		})
	})
	s.NoError(err)
	s.Equal(1, calls)
}

func (s *StoreTestSuite) TestWithTx_BeginFails() {
	s.mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := s.store.WithTx(context.Background(), func(store.Repositories) error { return nil })
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func (s *StoreTestSuite) TestSeedMarker_GetMissing() {
	s.mock.ExpectQuery(`FROM seed_markers WHERE source = \$1`).
		WithArgs("patents").
		WillReturnError(sql.ErrNoRows)

	_, err := s.store.SeedMarkers().Get(context.Background(), seed.SourcePatents)
	s.True(pkgerrors.IsNotFound(err))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

//Personal.AI order the ending
