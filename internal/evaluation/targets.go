package evaluation

// Target is a single calibration target: an empirical value a simulation
// statistic should land near, a tolerance for pass/fail, and a weight for
// the aggregate score.
type Target struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Value       float64 `yaml:"value" json:"value"`
	Tolerance   float64 `yaml:"tolerance" json:"tolerance"`
	Weight      float64 `yaml:"weight" json:"weight"`
}

// DefaultTargets returns the UK calibration targets, drawn from OBR/ONS
// statistical releases for 2015-2024. Periods are quarters.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:        "gdp_growth_mean",
			Description: "Mean quarterly GDP growth rate (~2 % p.a.)",
			Value:       0.005,
			Tolerance:   0.003,
			Weight:      2.0,
		},
		{
			Name:        "gdp_growth_std",
			Description: "Std dev of quarterly GDP growth (volatility)",
			Value:       0.010,
			Tolerance:   0.005,
			Weight:      1.0,
		},
		{
			Name:        "unemployment_mean",
			Description: "Mean unemployment rate (~4.5 %)",
			Value:       0.045,
			Tolerance:   0.010,
			Weight:      2.0,
		},
		{
			Name:        "inflation_mean",
			Description: "Mean quarterly inflation rate (2 % p.a. target)",
			Value:       0.005,
			Tolerance:   0.003,
			Weight:      2.0,
		},
		{
			Name:        "inflation_std",
			Description: "Std dev of quarterly inflation",
			Value:       0.003,
			Tolerance:   0.002,
			Weight:      1.0,
		},
		{
			Name:        "government_debt_gdp",
			Description: "Government debt as fraction of annual GDP (~85 %)",
			Value:       0.85,
			Tolerance:   0.20,
			Weight:      1.0,
		},
		{
			Name:        "wage_share",
			Description: "Labour income share of GDP (~55 %)",
			Value:       0.55,
			Tolerance:   0.10,
			Weight:      1.0,
		},
	}
}
