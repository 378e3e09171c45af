package aggregator

import (
	"holdings/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate enriches every holding with its rounded profit and computes the
// portfolio totals. Totals are summed from unrounded products and rounded
// once, so they never inherit the per-item rounding error.
func Aggregate(in []models.Holding) ([]models.EnrichedHolding, models.Totals) {
	out := make([]models.EnrichedHolding, 0, len(in))
	investment := decimal.Zero
	current := decimal.Zero
	for _, h := range in {
		profit := h.Quantity.Mul(h.LTP.Sub(h.AvgPrice)).Round(2)
		investment = investment.Add(h.AvgPrice.Mul(h.Quantity))
		current = current.Add(h.LTP.Mul(h.Quantity))
		out = append(out, models.EnrichedHolding{Holding: h, Profit: profit})
	}
	return out, models.Totals{
		TotalInvestment: investment.Round(2),
		CurrentValue:    current.Round(2),
	}
}
