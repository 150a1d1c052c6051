package api

import (
	"fmt"

	"github.com/jstammers/companies-house-abm/internal/config"
	"github.com/jstammers/companies-house-abm/internal/engine"
)

// SimulationRequest configures one simulation run. Every field is optional;
// nil fields take their defaults. Archive stores the finished run in the
// archive database when one is attached.
type SimulationRequest struct {
	Periods              *int     `json:"periods"`
	Seed                 *uint64  `json:"seed"`
	Firms                *int     `json:"n_firms"`
	Households           *int     `json:"n_households"`
	Banks                *int     `json:"n_banks"`
	PriceMarkup          *float64 `json:"price_markup"`
	MPCMean              *float64 `json:"mpc_mean"`
	CapitalRequirement   *float64 `json:"capital_requirement"`
	InflationTarget      *float64 `json:"inflation_target"`
	InflationCoefficient *float64 `json:"inflation_coefficient"`
	OutputGapCoefficient *float64 `json:"output_gap_coefficient"`
	SpendingGDPRatio     *float64 `json:"spending_gdp_ratio"`
	CorporateTaxRate     *float64 `json:"corporate_tax_rate"`
	IncomeTaxRate        *float64 `json:"income_tax_rate"`
	Archive              bool     `json:"archive"`
}

// SimulationParams are the fully resolved parameters a run was executed
// with, echoed back in every simulation response.
type SimulationParams struct {
	Periods              int     `json:"periods"`
	Seed                 uint64  `json:"seed"`
	Firms                int     `json:"n_firms"`
	Households           int     `json:"n_households"`
	Banks                int     `json:"n_banks"`
	PriceMarkup          float64 `json:"price_markup"`
	MPCMean              float64 `json:"mpc_mean"`
	CapitalRequirement   float64 `json:"capital_requirement"`
	InflationTarget      float64 `json:"inflation_target"`
	InflationCoefficient float64 `json:"inflation_coefficient"`
	OutputGapCoefficient float64 `json:"output_gap_coefficient"`
	SpendingGDPRatio     float64 `json:"spending_gdp_ratio"`
	CorporateTaxRate     float64 `json:"corporate_tax_rate"`
	IncomeTaxRate        float64 `json:"income_tax_rate"`
}

// SimulationResponse is the full result of a simulation run: one entry per
// simulated quarter plus whole-series summary statistics. Statistics that
// could not be computed are omitted.
type SimulationResponse struct {
	RunID   string                `json:"run_id,omitempty"`
	Params  SimulationParams      `json:"params"`
	Periods []engine.PeriodRecord `json:"periods"`
	Stats   map[string]float64    `json:"stats,omitempty"`
}

// DefaultsResponse carries the default simulation parameters.
type DefaultsResponse struct {
	Params SimulationParams `json:"params"`
}

// ErrorResponse is the error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// The web API defaults to a longer horizon than the CLI baseline so the
// charts show the model past its initial transient.
const defaultAPIPeriods = 80

func defaultParams(cfg *config.Config) SimulationParams {
	opts := engine.DefaultOptions()
	return SimulationParams{
		Periods:              defaultAPIPeriods,
		Seed:                 opts.Seed,
		Firms:                opts.Firms,
		Households:           opts.Households,
		Banks:                opts.Banks,
		PriceMarkup:          cfg.PriceMarkup,
		MPCMean:              cfg.MPCMean,
		CapitalRequirement:   cfg.CapitalRequirement,
		InflationTarget:      cfg.InflationTarget,
		InflationCoefficient: cfg.InflationCoefficient,
		OutputGapCoefficient: cfg.OutputGapCoefficient,
		SpendingGDPRatio:     cfg.SpendingGDPRatio,
		CorporateTaxRate:     cfg.TaxRateCorporate,
		IncomeTaxRate:        cfg.TaxRateIncome,
	}
}

// resolve merges the request onto the defaults, validates every supplied
// value against its allowed range, and returns the resolved parameters
// together with the config to run with.
func (r *SimulationRequest) resolve(base *config.Config) (SimulationParams, *config.Config, error) {
	cfg := base.Clone()
	params := defaultParams(cfg)

	if r.Periods != nil {
		if err := checkRange("periods", float64(*r.Periods), 10, 400); err != nil {
			return params, nil, err
		}
		params.Periods = *r.Periods
	}
	if r.Seed != nil {
		params.Seed = *r.Seed
	}
	if r.Firms != nil {
		if err := checkRange("n_firms", float64(*r.Firms), 10, 1000); err != nil {
			return params, nil, err
		}
		params.Firms = *r.Firms
	}
	if r.Households != nil {
		if err := checkRange("n_households", float64(*r.Households), 50, 5000); err != nil {
			return params, nil, err
		}
		params.Households = *r.Households
	}
	if r.Banks != nil {
		if err := checkRange("n_banks", float64(*r.Banks), 1, 20); err != nil {
			return params, nil, err
		}
		params.Banks = *r.Banks
	}
	if r.PriceMarkup != nil {
		if err := checkRange("price_markup", *r.PriceMarkup, 0.01, 0.50); err != nil {
			return params, nil, err
		}
		params.PriceMarkup = *r.PriceMarkup
		cfg.PriceMarkup = *r.PriceMarkup
	}
	if r.MPCMean != nil {
		if err := checkRange("mpc_mean", *r.MPCMean, 0.3, 0.99); err != nil {
			return params, nil, err
		}
		params.MPCMean = *r.MPCMean
		cfg.MPCMean = *r.MPCMean
	}
	if r.CapitalRequirement != nil {
		if err := checkRange("capital_requirement", *r.CapitalRequirement, 0.04, 0.30); err != nil {
			return params, nil, err
		}
		params.CapitalRequirement = *r.CapitalRequirement
		cfg.CapitalRequirement = *r.CapitalRequirement
	}
	if r.InflationTarget != nil {
		if err := checkRange("inflation_target", *r.InflationTarget, 0.005, 0.10); err != nil {
			return params, nil, err
		}
		params.InflationTarget = *r.InflationTarget
		cfg.InflationTarget = *r.InflationTarget
	}
	if r.InflationCoefficient != nil {
		if err := checkRange("inflation_coefficient", *r.InflationCoefficient, 1.0, 3.0); err != nil {
			return params, nil, err
		}
		params.InflationCoefficient = *r.InflationCoefficient
		cfg.InflationCoefficient = *r.InflationCoefficient
	}
	if r.OutputGapCoefficient != nil {
		if err := checkRange("output_gap_coefficient", *r.OutputGapCoefficient, 0.0, 1.5); err != nil {
			return params, nil, err
		}
		params.OutputGapCoefficient = *r.OutputGapCoefficient
		cfg.OutputGapCoefficient = *r.OutputGapCoefficient
	}
	if r.SpendingGDPRatio != nil {
		if err := checkRange("spending_gdp_ratio", *r.SpendingGDPRatio, 0.15, 0.65); err != nil {
			return params, nil, err
		}
		params.SpendingGDPRatio = *r.SpendingGDPRatio
		cfg.SpendingGDPRatio = *r.SpendingGDPRatio
	}
	if r.CorporateTaxRate != nil {
		if err := checkRange("corporate_tax_rate", *r.CorporateTaxRate, 0.05, 0.40); err != nil {
			return params, nil, err
		}
		params.CorporateTaxRate = *r.CorporateTaxRate
		cfg.TaxRateCorporate = *r.CorporateTaxRate
	}
	if r.IncomeTaxRate != nil {
		if err := checkRange("income_tax_rate", *r.IncomeTaxRate, 0.05, 0.50); err != nil {
			return params, nil, err
		}
		params.IncomeTaxRate = *r.IncomeTaxRate
		cfg.TaxRateIncome = *r.IncomeTaxRate
	}

	return params, cfg, nil
}

func (p SimulationParams) options(cfg *config.Config) engine.Options {
	return engine.Options{
		Firms:      p.Firms,
		Households: p.Households,
		Banks:      p.Banks,
		Periods:    p.Periods,
		Seed:       p.Seed,
		Config:     cfg,
	}
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %g and %g", name, lo, hi)
	}
	return nil
}
