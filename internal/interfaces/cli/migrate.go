package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeScope/internal/app"
	"github.com/turtacn/InfringeScope/internal/config"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

// migrator is the slice of postgres.Connection the migrate commands use.
type migrator interface {
	Migrate() error
	MigrateDown(steps int) error
	MigrationVersion() (uint, bool, error)
	Close() error
}

// openMigrator is swapped in tests.
var openMigrator = func(cfg config.DatabaseConfig, logger logging.Logger) (migrator, error) {
	return app.OpenDatabase(cfg, logger)
}

// MigrationStatus is the output of migrate version.
type MigrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func (s MigrationStatus) String() string {
	if s.Dirty {
		return fmt.Sprintf("version %d (dirty)\n", s.Version)
	}
	return fmt.Sprintf("version %d\n", s.Version)
}

func (s MigrationStatus) TableHeaders() []string { return []string{"VERSION", "DIRTY"} }

func (s MigrationStatus) TableRows() [][]string {
	return [][]string{{strconv.FormatUint(uint64(s.Version), 10), strconv.FormatBool(s.Dirty)}}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m migrator) error {
				if err := m.Migrate(); err != nil {
					return err
				}
				PrintSuccess(cmd, "migrations applied")
				return nil
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m migrator) error {
				if err := m.MigrateDown(steps); err != nil {
					return err
				}
				PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", steps))
				return nil
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m migrator) error {
				v, dirty, err := m.MigrationVersion()
				if err != nil {
					return err
				}
				return PrintResult(cmd, MigrationStatus{Version: v, Dirty: dirty})
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(migrator) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	m, err := openMigrator(cliCtx.Config.Database, cliCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}

//Personal.AI order the ending
