package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/InfringeScope/internal/domain/company"
	"github.com/turtacn/InfringeScope/internal/domain/infringement"
	"github.com/turtacn/InfringeScope/internal/domain/patent"
	"github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// Store is the PostgreSQL store.Store.  A Store built by WithTx shares one
// *sql.Tx across every repository it hands out.
type Store struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
	inTx     bool

	companies company.Repository
	patents   patent.Repository
	analyses  infringement.Repository
	users     user.Repository
	items     user.ItemRepository
	markers   seed.MarkerRepository
}

var _ store.Store = (*Store)(nil)

// NewStore builds a Store on conn's pool.
func NewStore(conn *postgres.Connection, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return newStore(conn, log, conn.DB(), false)
}

func newStore(conn *postgres.Connection, log logging.Logger, exec queryExecutor, inTx bool) *Store {
	return &Store{
		conn:      conn,
		log:       log,
		executor:  exec,
		inTx:      inTx,
		companies: NewPostgresCompanyRepo(exec, log),
		patents:   NewPostgresPatentRepo(exec, log),
		analyses:  NewPostgresAnalysisRepo(exec, log),
		users:     NewPostgresUserRepo(exec, log),
		items:     NewPostgresItemRepo(exec, log),
		markers:   NewPostgresSeedMarkerRepo(exec),
	}
}

func (s *Store) Companies() company.Repository      { return s.companies }
func (s *Store) Patents() patent.Repository         { return s.patents }
func (s *Store) Analyses() infringement.Repository  { return s.analyses }
func (s *Store) Users() user.Repository             { return s.users }
func (s *Store) Items() user.ItemRepository         { return s.items }
func (s *Store) SeedMarkers() seed.MarkerRepository { return s.markers }

// WithTx runs fn in a transaction.  Called on a Store that is already inside
// a transaction, fn joins the outer one.
func (s *Store) WithTx(ctx context.Context, fn func(store.Repositories) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}

	if err := fn(newStore(s.conn, s.log, tx, true)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			s.log.Error("Failed to roll back transaction", logging.Err(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit transaction")
	}
	return nil
}

//Personal.AI order the ending
