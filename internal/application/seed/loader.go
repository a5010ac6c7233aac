// Package seed loads the JSON fixture files into the store at startup.
//
// Each source (companies, patents, infringement analyses) is decoded as a
// whole and committed in its own transaction.  A document that cannot be
// decoded fails only its own source; a malformed record is skipped and the
// rest of its source is still committed.
package seed

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	domainseed "github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/domain/store"
	"github.com/turtacn/InfringeScope/internal/domain/user"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// Guard modes.
const (
	GuardPerSource     = "per_source"
	GuardBootstrapUser = "bootstrap_user"
	GuardNone          = "none"
)

// Config locates the fixtures and selects the guard.
type Config struct {
	DataDir           string
	CompaniesFile     string
	PatentsFile       string
	AnalysesFile      string
	Guard             string
	SuperuserEmail    string
	SuperuserPassword string
}

// Locker excludes concurrent seed runs across replicas.
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

// Option customizes a Loader.
type Option func(*Loader)

// WithLocker makes Run hold l for its whole duration.
func WithLocker(l Locker) Option { return func(ld *Loader) { ld.locker = l } }

// WithMetrics records per-source record counts.
func WithMetrics(m *prometheus.AppMetrics) Option { return func(ld *Loader) { ld.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(ld *Loader) { ld.logger = l } }

// WithClock overrides the default analysis_date source.
func WithClock(now func() time.Time) Option { return func(ld *Loader) { ld.now = now } }

// Loader runs seed passes.
type Loader struct {
	store   store.Store
	cfg     Config
	locker  Locker
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	now     func() time.Time
}

// NewLoader returns a Loader over st.
func NewLoader(st store.Store, cfg Config, opts ...Option) *Loader {
	if cfg.Guard == "" {
		cfg.Guard = GuardPerSource
	}
	l := &Loader{
		store:   st,
		cfg:     cfg,
		metrics: prometheus.NewNopAppMetrics(),
		logger:  logging.NewNopLogger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("seed")
	return l
}

// Run ensures the bootstrap superuser and then loads every source the guard
// allows.  Source failures are reported, not returned; the error is reserved
// for problems that stop the run as a whole.
func (l *Loader) Run(ctx context.Context) (*Report, error) {
	report := &Report{Sources: make([]SourceReport, 0, len(domainseed.Sources))}

	if l.locker != nil {
		ok, err := l.locker.TryLock(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "failed to acquire seed lock")
		}
		if !ok {
			l.logger.Info("Seed lock held by another instance, skipping")
			report.LockNotAcquired = true
			return report, nil
		}
		defer func() {
			if err := l.locker.Unlock(context.WithoutCancel(ctx)); err != nil {
				l.logger.Warn("Failed to release seed lock", logging.Err(err))
			}
		}()
	}

	existed, err := l.ensureSuperuser(ctx)
	if err != nil {
		return nil, err
	}
	report.SuperuserCreated = l.cfg.SuperuserEmail != "" && !existed

	for _, src := range domainseed.Sources {
		report.Sources = append(report.Sources, l.runSource(ctx, src, existed))
	}
	return report, nil
}

// ensureSuperuser reports whether the user existed before this call.
func (l *Loader) ensureSuperuser(ctx context.Context) (bool, error) {
	if l.cfg.SuperuserEmail == "" {
		return false, nil
	}
	_, err := l.store.Users().GetByEmail(ctx, l.cfg.SuperuserEmail)
	if err == nil {
		return true, nil
	}
	if !errors.IsNotFound(err) {
		return false, err
	}

	u, err := user.NewSuperuser(l.cfg.SuperuserEmail, l.cfg.SuperuserPassword)
	if err != nil {
		return false, err
	}
	if err := l.store.Users().Insert(ctx, u); err != nil {
		return false, err
	}
	l.logger.Info("Bootstrap superuser created", logging.String("email", u.Email))
	return false, nil
}

func (l *Loader) path(src domainseed.Source) string {
	var name string
	switch src {
	case domainseed.SourceCompanies:
		name = l.cfg.CompaniesFile
	case domainseed.SourcePatents:
		name = l.cfg.PatentsFile
	case domainseed.SourceAnalyses:
		name = l.cfg.AnalysesFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.cfg.DataDir, name)
}

func (l *Loader) runSource(ctx context.Context, src domainseed.Source, userExisted bool) SourceReport {
	rep := SourceReport{Source: src}
	log := l.logger.With(logging.String("source", string(src)))

	skip, err := l.guarded(ctx, src, userExisted)
	if err != nil {
		rep.Status, rep.Error = StatusFailed, err.Error()
		log.Error("Failed to evaluate seed guard", logging.Err(err))
		return rep
	}
	if skip {
		rep.Status = StatusSkippedGuard
		log.Info("Source already seeded, skipping", logging.String("guard", l.cfg.Guard))
		return rep
	}

	path := l.path(src)
	raw, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		rep.Status = StatusSkippedMissing
		log.Warn("Data file does not exist, skipping", logging.String("path", path))
		return rep
	}
	if err != nil {
		rep.Status, rep.Error = StatusFailed, err.Error()
		log.Error("Failed to read data file", logging.String("path", path), logging.Err(err))
		return rep
	}

	batch, err := l.decode(src, raw, log, &rep)
	if err != nil {
		rep.Status, rep.Error = StatusFailed, err.Error()
		log.Error("Error parsing JSON data", logging.String("path", path), logging.Err(err))
		return rep
	}

	err = l.store.WithTx(ctx, func(tx store.Repositories) error {
		inserted, duplicates, err := batch.insert(ctx, tx)
		if err != nil {
			return err
		}
		rep.Inserted, rep.Duplicates = inserted, duplicates
		return tx.SeedMarkers().Put(ctx, &domainseed.Marker{
			Source:      src,
			RecordCount: inserted,
			LoadedAt:    l.now(),
		})
	})
	if err != nil {
		rep = SourceReport{Source: src, Status: StatusFailed, Error: err.Error(), Invalid: rep.Invalid}
		log.Error("Seed transaction rolled back", logging.Err(err))
		return rep
	}

	rep.Status = StatusLoaded
	l.metrics.RecordSeedRecords(string(src), "inserted", rep.Inserted)
	l.metrics.RecordSeedRecords(string(src), "duplicate", rep.Duplicates)
	l.metrics.RecordSeedRecords(string(src), "invalid", rep.Invalid)
	log.Info("Source loaded",
		logging.Int("inserted", rep.Inserted),
		logging.Int("duplicates", rep.Duplicates),
		logging.Int("invalid", rep.Invalid))
	return rep
}

func (l *Loader) guarded(ctx context.Context, src domainseed.Source, userExisted bool) (bool, error) {
	switch l.cfg.Guard {
	case GuardNone:
		return false, nil
	case GuardBootstrapUser:
		return userExisted, nil
	default:
		_, err := l.store.SeedMarkers().Get(ctx, src)
		if err == nil {
			return true, nil
		}
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
}

//Personal.AI order the ending
