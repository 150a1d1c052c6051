package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jstammers/companies-house-abm/internal/evaluation"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	Axes       []string
	Firms      int
	Households int
	Banks      int
	Periods    int
	Seed       uint64
	WarmUp     int
	ConfigPath string
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grid-search parameter combinations against calibration targets",
		Long: `Run every combination of the given parameter values, score each run
against the calibration targets, and print the combinations ranked by
weighted RMS deviation (best first).

Each --set flag adds one axis to the grid: a config parameter name and
comma-separated values. The name "seed" varies the run seed instead of
a config parameter. Without --set the base configuration is evaluated
once.

Example:
  econsim sweep --set separation_rate=0.04,0.05,0.06 --set price_markup=0.10,0.15
  econsim sweep --set seed=1,2,3,4,5 --periods 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Axes, "set", nil, "parameter axis as name=v1,v2,... (repeatable)")
	cmd.Flags().IntVar(&opts.Firms, "firms", 100, "number of firms")
	cmd.Flags().IntVar(&opts.Households, "households", 500, "number of households")
	cmd.Flags().IntVar(&opts.Banks, "banks", 10, "number of banks")
	cmd.Flags().IntVar(&opts.Periods, "periods", 80, "number of periods per run")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&opts.WarmUp, "warm-up", 20, "leading periods excluded from statistics")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML parameter file")

	return cmd
}

func runSweep(opts *SweepOptions, cmd *cobra.Command) error {
	if opts.Firms < 0 || opts.Households < 0 || opts.Banks < 0 || opts.Periods < 0 {
		return NewExitError(ExitCommandError, "population sizes and periods must be non-negative")
	}

	params, err := parseSweepParams(opts.Axes)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --set flag", err)
	}

	base, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	summary := evaluation.Sweep(evaluation.SweepOptions{
		Params:     params,
		Firms:      opts.Firms,
		Households: opts.Households,
		Banks:      opts.Banks,
		Periods:    opts.Periods,
		Seed:       opts.Seed,
		WarmUp:     opts.WarmUp,
		Base:       base,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, summary.Table())

	best := summary.Best()
	if best == nil {
		return NewExitError(ExitCommandError, "no sweep combinations could be evaluated")
	}
	if len(best.Params) > 0 {
		pairs := make([]string, 0, len(params))
		for _, p := range params {
			if v, ok := best.Params[p.Name]; ok {
				pairs = append(pairs, fmt.Sprintf("%s=%s", p.Name, strconv.FormatFloat(v, 'g', -1, 64)))
			}
		}
		fmt.Fprintf(out, "\nBest combination: %s (score %.4f)\n", strings.Join(pairs, " "), best.Score())
	}
	return nil
}

// parseSweepParams turns repeated name=v1,v2,... flags into grid axes,
// preserving flag order.
func parseSweepParams(axes []string) ([]evaluation.SweepParam, error) {
	params := make([]evaluation.SweepParam, 0, len(axes))
	for _, axis := range axes {
		name, list, ok := strings.Cut(axis, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=v1,v2,... got %q", axis)
		}
		var values []float64
		for _, raw := range strings.Split(list, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("axis %s: %w", name, err)
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("axis %s has no values", name)
		}
		params = append(params, evaluation.SweepParam{Name: name, Values: values})
	}
	return params, nil
}
