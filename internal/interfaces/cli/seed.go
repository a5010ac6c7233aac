package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeScope/internal/app"
	"github.com/turtacn/InfringeScope/internal/application/seed"
	"github.com/turtacn/InfringeScope/internal/config"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

// seeder is the slice of app.App the seed command uses.
type seeder interface {
	Seed(ctx context.Context) (*seed.Report, error)
	Close() error
}

// newSeeder is swapped in tests.
var newSeeder = func(cfg *config.Config, logger logging.Logger) (seeder, error) {
	return app.New(cfg, app.Options{Version: Version, Logger: logger})
}

// SeedResult renders a seed.Report.
type SeedResult struct {
	*seed.Report
}

// JSONValue prints the embedded report as-is.
func (r SeedResult) JSONValue() interface{} { return r.Report }

func (r SeedResult) String() string {
	if r.LockNotAcquired {
		return "seed skipped: another replica holds the lock\n"
	}
	var sb strings.Builder
	if r.SuperuserCreated {
		sb.WriteString("superuser created\n")
	}
	for _, s := range r.Sources {
		fmt.Fprintf(&sb, "%s: %s", s.Source, s.Status)
		if s.Status == seed.StatusLoaded {
			fmt.Fprintf(&sb, " (inserted %d, duplicates %d, invalid %d)", s.Inserted, s.Duplicates, s.Invalid)
		}
		if s.Error != "" {
			fmt.Fprintf(&sb, ": %s", s.Error)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r SeedResult) TableHeaders() []string {
	return []string{"SOURCE", "STATUS", "INSERTED", "DUPLICATES", "INVALID", "ERROR"}
}

func (r SeedResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Sources))
	for _, s := range r.Sources {
		rows = append(rows, []string{
			string(s.Source),
			string(s.Status),
			strconv.Itoa(s.Inserted),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.Invalid),
			s.Error,
		})
	}
	return rows
}

func newSeedCmd() *cobra.Command {
	var (
		dataDir string
		guard   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the JSON fixtures into the database",
		Long: "Runs the same seed load as serve, once, and exits.  Sources already loaded\n" +
			"are skipped according to seed.guard.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if dataDir != "" {
				cfg.Seed.DataDir = dataDir
			}
			if guard != "" {
				cfg.Seed.Guard = guard
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			s, err := newSeeder(&cfg, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			report, err := s.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if err := PrintResult(cmd, SeedResult{Report: report}); err != nil {
				return err
			}
			if report.Failed() {
				return fmt.Errorf("one or more seed sources failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "fixture directory (overrides seed.data_dir)")
	cmd.Flags().StringVar(&guard, "guard", "", "guard mode: per_source, bootstrap_user or none")
	return cmd
}

//Personal.AI order the ending
