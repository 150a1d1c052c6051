package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jstammers/companies-house-abm/internal/engine"
	"github.com/jstammers/companies-house-abm/internal/persistence"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Firms      int
	Households int
	Banks      int
	Periods    int
	Seed       uint64
	ConfigPath string
	CSVPath    string
	Database   string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}
	defaults := engine.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print a summary of the final period",
		Long: `Run a single simulation with the given population sizes, horizon and
seed, then print a summary of the final period.

The full period series can be exported with --csv or archived in a
SQLite database with --db.

Example:
  econsim run --periods 200 --seed 7 --csv series.csv
  econsim run --config calibration.yaml --db runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Firms, "firms", defaults.Firms, "number of firms")
	cmd.Flags().IntVar(&opts.Households, "households", defaults.Households, "number of households")
	cmd.Flags().IntVar(&opts.Banks, "banks", defaults.Banks, "number of banks")
	cmd.Flags().IntVar(&opts.Periods, "periods", defaults.Periods, "number of periods to simulate")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", defaults.Seed, "random seed")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML parameter file")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "write the period series to a CSV file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the run in a SQLite database")

	return cmd
}

func runSimulation(opts *RunOptions, cmd *cobra.Command) error {
	if opts.Firms < 0 || opts.Households < 0 || opts.Banks < 0 || opts.Periods < 0 {
		return NewExitError(ExitCommandError, "population sizes and periods must be non-negative")
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	engOpts := engine.Options{
		Firms:      opts.Firms,
		Households: opts.Households,
		Banks:      opts.Banks,
		Periods:    opts.Periods,
		Seed:       opts.Seed,
		Config:     cfg,
	}
	records := engine.RunSimulation(engOpts)

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No periods simulated.")
		return nil
	}

	last := records[len(records)-1]
	fmt.Fprintf(out, "Simulated %d periods: %d firms, %d households, %d banks (seed %d)\n",
		opts.Periods, opts.Firms, opts.Households, opts.Banks, opts.Seed)
	fmt.Fprintf(out, "  Final GDP:         %s\n", humanize.CommafWithDigits(last.GDP, 0))
	fmt.Fprintf(out, "  Unemployment:      %.1f%%\n", last.UnemploymentRate*100)
	fmt.Fprintf(out, "  Inflation:         %.2f%%\n", last.Inflation*100)
	fmt.Fprintf(out, "  Policy rate:       %.2f%%\n", last.PolicyRate*100)
	fmt.Fprintf(out, "  Average wage:      %s\n", humanize.CommafWithDigits(last.AverageWage, 0))
	fmt.Fprintf(out, "  Government debt:   %s\n", humanize.CommafWithDigits(last.GovernmentDebt, 0))
	fmt.Fprintf(out, "  Total lending:     %s\n", humanize.CommafWithDigits(last.TotalLending, 0))
	fmt.Fprintf(out, "  Bankruptcies:      %d\n", last.FirmBankruptcies)

	if opts.CSVPath != "" {
		if err := engine.WriteRecordsCSV(opts.CSVPath, records); err != nil {
			return WrapExitError(ExitCommandError, "failed to write CSV", err)
		}
		fmt.Fprintf(out, "Wrote %d periods to %s\n", len(records), opts.CSVPath)
	}

	if opts.Database != "" {
		db, err := persistence.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		id, err := db.SaveRun(engOpts, records)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to archive run", err)
		}
		fmt.Fprintf(out, "Archived run %s in %s\n", id, opts.Database)
	}

	return nil
}
