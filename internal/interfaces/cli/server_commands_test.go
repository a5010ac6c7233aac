package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeScope/internal/application/seed"
	"github.com/turtacn/InfringeScope/internal/config"
	domainseed "github.com/turtacn/InfringeScope/internal/domain/seed"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

type fakeMigrator struct {
	upCalls   int
	downSteps int
	version   uint
	dirty     bool
	err       error
	closed    bool
}

func (m *fakeMigrator) Migrate() error {
	m.upCalls++
	return m.err
}

func (m *fakeMigrator) MigrateDown(steps int) error {
	m.downSteps = steps
	return m.err
}

func (m *fakeMigrator) MigrationVersion() (uint, bool, error) { return m.version, m.dirty, m.err }

func (m *fakeMigrator) Close() error {
	m.closed = true
	return nil
}

func useMigrator(t *testing.T, m *fakeMigrator) *config.DatabaseConfig {
	t.Helper()
	var seen config.DatabaseConfig
	prev := openMigrator
	openMigrator = func(cfg config.DatabaseConfig, _ logging.Logger) (migrator, error) {
		seen = cfg
		return m, nil
	}
	t.Cleanup(func() { openMigrator = prev })
	return &seen
}

func TestMigrateUp(t *testing.T) {
	t.Setenv("INFRINGESCOPE_DATABASE_HOST", "db.internal")
	m := &fakeMigrator{}
	seen := useMigrator(t, m)

	out, _, err := executeCommand(t, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "OK: migrations applied\n", out)
	assert.Equal(t, 1, m.upCalls)
	assert.True(t, m.closed)
	assert.Equal(t, "db.internal", seen.Host)
}

func TestMigrateDown_Steps(t *testing.T) {
	m := &fakeMigrator{}
	useMigrator(t, m)

	out, _, err := executeCommand(t, "migrate", "down", "--steps", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, m.downSteps)
	assert.Contains(t, out, "rolled back 2 migration(s)")
}

func TestMigrateVersion(t *testing.T) {
	m := &fakeMigrator{version: 3, dirty: true}
	useMigrator(t, m)

	out, _, err := executeCommand(t, "migrate", "version")
	require.NoError(t, err)
	assert.Equal(t, "version 3 (dirty)\n", out)

	out, _, err = executeCommand(t, "-o", "json", "migrate", "version")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3,"dirty":true}`, out)
}

func TestMigrate_ErrorPropagates(t *testing.T) {
	m := &fakeMigrator{err: fmt.Errorf("failed to run migrations: boom")}
	useMigrator(t, m)

	_, _, err := executeCommand(t, "migrate", "up")
	assert.ErrorContains(t, err, "boom")
	assert.True(t, m.closed)
}

type fakeSeeder struct {
	cfg    *config.Config
	report *seed.Report
	err    error
	closed bool
}

func (s *fakeSeeder) Seed(context.Context) (*seed.Report, error) { return s.report, s.err }

func (s *fakeSeeder) Close() error {
	s.closed = true
	return nil
}

func useSeeder(t *testing.T, s *fakeSeeder) {
	t.Helper()
	prev := newSeeder
	newSeeder = func(cfg *config.Config, _ logging.Logger) (seeder, error) {
		s.cfg = cfg
		return s, nil
	}
	t.Cleanup(func() { newSeeder = prev })
}

func TestSeed_PrintsReport(t *testing.T) {
	s := &fakeSeeder{report: &seed.Report{
		SuperuserCreated: true,
		Sources: []seed.SourceReport{
			{Source: domainseed.SourceCompanies, Status: seed.StatusLoaded, Inserted: 10, Duplicates: 1},
			{Source: domainseed.SourcePatents, Status: seed.StatusSkippedGuard},
		},
	}}
	useSeeder(t, s)

	out, _, err := executeCommand(t, "seed", "--data-dir", "fixtures", "--guard", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "superuser created")
	assert.Contains(t, out, "companies: loaded (inserted 10, duplicates 1, invalid 0)")
	assert.Contains(t, out, "patents: skipped_guard")
	assert.True(t, s.closed)
	assert.Equal(t, "fixtures", s.cfg.Seed.DataDir)
	assert.Equal(t, config.SeedGuardNone, s.cfg.Seed.Guard)
}

func TestSeed_TableAndJSON(t *testing.T) {
	s := &fakeSeeder{report: &seed.Report{Sources: []seed.SourceReport{
		{Source: domainseed.SourceAnalyses, Status: seed.StatusSkippedMissing},
	}}}
	useSeeder(t, s)

	out, _, err := executeCommand(t, "-o", "table", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "infringement_analyses  skipped_missing")

	out, _, err = executeCommand(t, "-o", "json", "seed")
	require.NoError(t, err)
	assert.JSONEq(t, `{"superuser_created":false,"sources":[{"source":"infringement_analyses","status":"skipped_missing","inserted":0,"duplicates":0,"invalid":0}]}`, out)
}

func TestSeed_FailedSourceIsAnError(t *testing.T) {
	useSeeder(t, &fakeSeeder{report: &seed.Report{Sources: []seed.SourceReport{
		{Source: domainseed.SourcePatents, Status: seed.StatusFailed, Error: "read patents.json: permission denied"},
	}}})

	out, _, err := executeCommand(t, "seed")
	assert.ErrorContains(t, err, "one or more seed sources failed")
	assert.Contains(t, out, "patents: failed: read patents.json: permission denied")
}

func TestSeed_LockHeldElsewhere(t *testing.T) {
	useSeeder(t, &fakeSeeder{report: &seed.Report{LockNotAcquired: true}})

	out, _, err := executeCommand(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seed skipped: another replica holds the lock\n", out)
}

func TestSeed_InvalidGuard(t *testing.T) {
	useSeeder(t, &fakeSeeder{report: &seed.Report{}})

	_, _, err := executeCommand(t, "seed", "--guard", "sometimes")
	assert.ErrorContains(t, err, "seed.guard")
}

//Personal.AI order the ending
