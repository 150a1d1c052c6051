package engine

import "math"

// eps floors divisors and allocation weights.
const eps = 1e-9

// GoodsOutcome aggregates one period of goods market clearing.
type GoodsOutcome struct {
	TotalSales   float64 `json:"total_sales"`
	AveragePrice float64 `json:"average_price"`
	ExcessDemand float64 `json:"excess_demand"`
	Inflation    float64 `json:"inflation"`
}

// clearGoodsMarket allocates household plus government demand across
// non-bankrupt firms in proportion to price competitiveness: cheaper firms
// get a larger share. Sales draw down inventory, set turnover to market
// value, and drive each firm's markup adaptation. Inflation is the change
// in the simple average price across active firms.
func (e *Economy) clearGoodsMarket() {
	cfg := e.cfg
	previousAverage := e.GoodsAveragePrice

	var active []int
	for i := range e.Firms {
		if !e.Firms[i].Bankrupt {
			active = append(active, i)
		}
	}

	totalDemand := e.Government.Expenditure
	for i := range e.Households {
		totalDemand += e.Households[i].Consumption
	}

	totalSupply := 0.0
	for _, i := range active {
		totalSupply += e.Firms[i].Inventory * e.Firms[i].Price
	}
	excessDemand := totalDemand - totalSupply

	// With every firm bankrupt nothing trades and the price level carries
	// forward unchanged.
	if len(active) == 0 {
		e.GoodsLast = GoodsOutcome{
			AveragePrice: previousAverage,
			ExcessDemand: excessDemand,
		}
		return
	}

	maxPrice := math.Inf(-1)
	for _, i := range active {
		maxPrice = math.Max(maxPrice, e.Firms[i].Price)
	}

	weights := make([]float64, len(active))
	weightSum := 0.0
	for k, i := range active {
		w := math.Max(maxPrice-e.Firms[i].Price+eps, eps)
		weights[k] = w
		weightSum += w
	}

	totalSales := 0.0
	for k, i := range active {
		f := &e.Firms[i]
		share := weights[k] / weightSum
		demandForFirm := totalDemand * share
		available := f.Inventory * f.Price
		actualSales := math.Min(demandForFirm, available)

		quantitySold := actualSales / math.Max(f.Price, eps)
		f.Inventory = math.Max(f.Inventory-quantitySold, 0)
		f.Turnover = actualSales
		totalSales += actualSales

		firmExcess := (demandForFirm - available) / math.Max(available, eps)
		f.AdaptMarkup(firmExcess, cfg.MarkupAdjustmentSpeed)
	}

	averagePrice := 0.0
	for _, i := range active {
		averagePrice += e.Firms[i].Price
	}
	averagePrice /= float64(len(active))

	inflation := 0.0
	if previousAverage > 0 {
		inflation = (averagePrice - previousAverage) / previousAverage
	}

	e.GoodsAveragePrice = averagePrice
	e.GoodsLast = GoodsOutcome{
		TotalSales:   totalSales,
		AveragePrice: averagePrice,
		ExcessDemand: excessDemand,
		Inflation:    inflation,
	}
}
