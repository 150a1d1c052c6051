package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every behavioral parameter of the model (YAML shape).
// Population sizes, period count and seed are run options, not config.
type Config struct {
	// Firm behavior.
	PriceMarkup               float64 `yaml:"price_markup"`
	InventoryTargetRatio      float64 `yaml:"inventory_target_ratio"`
	CapacityUtilizationTarget float64 `yaml:"capacity_utilization_target"`
	MarkupAdjustmentSpeed     float64 `yaml:"markup_adjustment_speed"`

	// Household behavior and initial distributions.
	ConsumptionSmoothing float64 `yaml:"consumption_smoothing"`
	JobSearchIntensity   float64 `yaml:"job_search_intensity"`
	IncomeMean           float64 `yaml:"income_mean"`
	IncomeStd            float64 `yaml:"income_std"`
	WealthShape          float64 `yaml:"wealth_shape"`
	MPCMean              float64 `yaml:"mpc_mean"`
	MPCStd               float64 `yaml:"mpc_std"`

	// Bank behavior.
	CapitalRequirement     float64 `yaml:"capital_requirement"`
	CapitalBuffer          float64 `yaml:"capital_buffer"`
	BaseInterestMarkup     float64 `yaml:"base_interest_markup"`
	RiskPremiumSensitivity float64 `yaml:"risk_premium_sensitivity"`
	LendingThreshold       float64 `yaml:"lending_threshold"`
	RiskWeight             float64 `yaml:"risk_weight"`

	// Labor market.
	SeparationRate     float64 `yaml:"separation_rate"`
	MatchingEfficiency float64 `yaml:"matching_efficiency"`
	WageStickiness     float64 `yaml:"wage_stickiness"`

	// Credit market.
	DefaultRateBase float64 `yaml:"default_rate_base"`
	CreditRationing bool    `yaml:"credit_rationing"`

	// Government.
	TaxRateCorporate         float64 `yaml:"tax_rate_corporate"`
	TaxRateIncome            float64 `yaml:"tax_rate_income"`
	SpendingGDPRatio         float64 `yaml:"spending_gdp_ratio"`
	UnemploymentBenefitRatio float64 `yaml:"unemployment_benefit_ratio"`
	DeficitTarget            float64 `yaml:"deficit_target"`
	DeficitAdjustmentSpeed   float64 `yaml:"deficit_adjustment_speed"`

	// Central bank (Taylor rule).
	InflationTarget       float64 `yaml:"inflation_target"`
	InflationCoefficient  float64 `yaml:"inflation_coefficient"`
	OutputGapCoefficient  float64 `yaml:"output_gap_coefficient"`
	InterestRateSmoothing float64 `yaml:"interest_rate_smoothing"`
	RateLowerBound        float64 `yaml:"rate_lower_bound"`

	// Sector labels cycled over firms at creation.
	Sectors []string `yaml:"sectors"`
}

// Default returns the calibrated baseline parameter set.
func Default() *Config {
	return &Config{
		PriceMarkup:               0.15,
		InventoryTargetRatio:      0.2,
		CapacityUtilizationTarget: 0.85,
		MarkupAdjustmentSpeed:     0.1,

		ConsumptionSmoothing: 0.7,
		JobSearchIntensity:   0.3,
		IncomeMean:           35000,
		IncomeStd:            15000,
		WealthShape:          2.0,
		MPCMean:              0.8,
		MPCStd:               0.1,

		CapitalRequirement:     0.10,
		CapitalBuffer:          0.02,
		BaseInterestMarkup:     0.02,
		RiskPremiumSensitivity: 0.05,
		LendingThreshold:       0.3,
		RiskWeight:             1.0,

		SeparationRate:     0.05,
		MatchingEfficiency: 0.3,
		WageStickiness:     0.8,

		DefaultRateBase: 0.01,
		CreditRationing: true,

		TaxRateCorporate:         0.19,
		TaxRateIncome:            0.20,
		SpendingGDPRatio:         0.40,
		UnemploymentBenefitRatio: 0.4,
		DeficitTarget:            0.03,
		DeficitAdjustmentSpeed:   0.1,

		InflationTarget:       0.02,
		InflationCoefficient:  1.5,
		OutputGapCoefficient:  0.5,
		InterestRateSmoothing: 0.8,
		RateLowerBound:        0.001,

		Sectors: []string{
			"manufacturing",
			"construction",
			"retail_trade",
			"wholesale_trade",
			"professional_services",
			"financial_services",
			"real_estate",
			"information_technology",
			"healthcare",
			"accommodation_food",
			"transportation",
			"utilities",
			"other_services",
		},
	}
}

// Load reads a YAML file over the defaults, so partial files only
// override the parameters they name.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	fractions := []struct {
		name string
		v    float64
	}{
		{"markup_adjustment_speed", c.MarkupAdjustmentSpeed},
		{"consumption_smoothing", c.ConsumptionSmoothing},
		{"job_search_intensity", c.JobSearchIntensity},
		{"capital_requirement", c.CapitalRequirement},
		{"capital_buffer", c.CapitalBuffer},
		{"separation_rate", c.SeparationRate},
		{"matching_efficiency", c.MatchingEfficiency},
		{"wage_stickiness", c.WageStickiness},
		{"default_rate_base", c.DefaultRateBase},
		{"tax_rate_corporate", c.TaxRateCorporate},
		{"tax_rate_income", c.TaxRateIncome},
		{"spending_gdp_ratio", c.SpendingGDPRatio},
		{"unemployment_benefit_ratio", c.UnemploymentBenefitRatio},
		{"deficit_target", c.DeficitTarget},
		{"deficit_adjustment_speed", c.DeficitAdjustmentSpeed},
		{"interest_rate_smoothing", c.InterestRateSmoothing},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", f.name, f.v)
		}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"income_mean", c.IncomeMean},
		{"wealth_shape", c.WealthShape},
		{"mpc_mean", c.MPCMean},
		{"risk_weight", c.RiskWeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}
	if c.IncomeStd < 0 {
		return fmt.Errorf("income_std must be non-negative, got %v", c.IncomeStd)
	}
	if c.MPCStd < 0 {
		return fmt.Errorf("mpc_std must be non-negative, got %v", c.MPCStd)
	}
	if c.PriceMarkup < 0 {
		return fmt.Errorf("price_markup must be non-negative, got %v", c.PriceMarkup)
	}
	if c.InventoryTargetRatio < 0 {
		return fmt.Errorf("inventory_target_ratio must be non-negative, got %v", c.InventoryTargetRatio)
	}
	if c.CapacityUtilizationTarget <= 0 || c.CapacityUtilizationTarget > 1 {
		return fmt.Errorf("capacity_utilization_target must be in (0, 1], got %v", c.CapacityUtilizationTarget)
	}
	if c.BaseInterestMarkup < 0 {
		return fmt.Errorf("base_interest_markup must be non-negative, got %v", c.BaseInterestMarkup)
	}
	if c.RiskPremiumSensitivity < 0 {
		return fmt.Errorf("risk_premium_sensitivity must be non-negative, got %v", c.RiskPremiumSensitivity)
	}
	if c.LendingThreshold < 0 {
		return fmt.Errorf("lending_threshold must be non-negative, got %v", c.LendingThreshold)
	}
	if c.RateLowerBound < 0 {
		return fmt.Errorf("rate_lower_bound must be non-negative, got %v", c.RateLowerBound)
	}
	if len(c.Sectors) == 0 {
		return errors.New("sectors must not be empty")
	}
	return nil
}

// Clone returns a deep copy, used by parameter sweeps to vary one
// combination without touching the base.
func (c *Config) Clone() *Config {
	out := *c
	out.Sectors = append([]string(nil), c.Sectors...)
	return &out
}

// Set assigns a numeric parameter by its YAML name. Boolean
// credit_rationing accepts 0 and 1.
func (c *Config) Set(name string, value float64) error {
	switch name {
	case "price_markup":
		c.PriceMarkup = value
	case "inventory_target_ratio":
		c.InventoryTargetRatio = value
	case "capacity_utilization_target":
		c.CapacityUtilizationTarget = value
	case "markup_adjustment_speed":
		c.MarkupAdjustmentSpeed = value
	case "consumption_smoothing":
		c.ConsumptionSmoothing = value
	case "job_search_intensity":
		c.JobSearchIntensity = value
	case "income_mean":
		c.IncomeMean = value
	case "income_std":
		c.IncomeStd = value
	case "wealth_shape":
		c.WealthShape = value
	case "mpc_mean":
		c.MPCMean = value
	case "mpc_std":
		c.MPCStd = value
	case "capital_requirement":
		c.CapitalRequirement = value
	case "capital_buffer":
		c.CapitalBuffer = value
	case "base_interest_markup":
		c.BaseInterestMarkup = value
	case "risk_premium_sensitivity":
		c.RiskPremiumSensitivity = value
	case "lending_threshold":
		c.LendingThreshold = value
	case "risk_weight":
		c.RiskWeight = value
	case "separation_rate":
		c.SeparationRate = value
	case "matching_efficiency":
		c.MatchingEfficiency = value
	case "wage_stickiness":
		c.WageStickiness = value
	case "default_rate_base":
		c.DefaultRateBase = value
	case "credit_rationing":
		c.CreditRationing = value != 0
	case "tax_rate_corporate":
		c.TaxRateCorporate = value
	case "tax_rate_income":
		c.TaxRateIncome = value
	case "spending_gdp_ratio":
		c.SpendingGDPRatio = value
	case "unemployment_benefit_ratio":
		c.UnemploymentBenefitRatio = value
	case "deficit_target":
		c.DeficitTarget = value
	case "deficit_adjustment_speed":
		c.DeficitAdjustmentSpeed = value
	case "inflation_target":
		c.InflationTarget = value
	case "inflation_coefficient":
		c.InflationCoefficient = value
	case "output_gap_coefficient":
		c.OutputGapCoefficient = value
	case "interest_rate_smoothing":
		c.InterestRateSmoothing = value
	case "rate_lower_bound":
		c.RateLowerBound = value
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}
