package engine

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteRecordsCSV writes the record series to path, one row per period.
func WriteRecordsCSV(path string, records []PeriodRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"period",
		"gdp",
		"inflation",
		"unemployment_rate",
		"average_wage",
		"policy_rate",
		"government_deficit",
		"government_debt",
		"total_lending",
		"firm_bankruptcies",
		"total_employment",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Period),
			fmtFloat(r.GDP),
			fmtFloat(r.Inflation),
			fmtFloat(r.UnemploymentRate),
			fmtFloat(r.AverageWage),
			fmtFloat(r.PolicyRate),
			fmtFloat(r.GovernmentDeficit),
			fmtFloat(r.GovernmentDebt),
			fmtFloat(r.TotalLending),
			strconv.Itoa(r.FirmBankruptcies),
			strconv.Itoa(r.TotalEmployment),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
