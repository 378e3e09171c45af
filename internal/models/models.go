package models

import "github.com/shopspring/decimal"

type Holding struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	LTP      decimal.Decimal `json:"ltp"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

// EnrichedHolding is a Holding with its profit rounded to two decimals.
type EnrichedHolding struct {
	Holding
	Profit decimal.Decimal `json:"profit"`
}

func (h EnrichedHolding) ProfitString() string {
	return h.Profit.StringFixed(2)
}

// Totals holds the portfolio aggregates, already rounded to two decimals.
type Totals struct {
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	CurrentValue    decimal.Decimal `json:"currentVal"`
}

// Profit is the presentation-only portfolio P/L, taken from the rounded totals.
func (t Totals) Profit() decimal.Decimal {
	return t.CurrentValue.Sub(t.TotalInvestment)
}

func (t Totals) TotalInvestmentString() string { return t.TotalInvestment.StringFixed(2) }
func (t Totals) CurrentValueString() string    { return t.CurrentValue.StringFixed(2) }
func (t Totals) ProfitString() string          { return t.Profit().StringFixed(2) }

// WireHolding is one element of data.userHolding as served on the wire.
type WireHolding struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	LTP      float64 `json:"ltp"`
	AvgPrice float64 `json:"avgPrice"`
}

type HoldingsPayload struct {
	UserHolding []WireHolding `json:"userHolding"`
}

type HoldingsResponse struct {
	Data HoldingsPayload `json:"data"`
}

func (h Holding) Wire() WireHolding {
	return WireHolding{
		Symbol:   h.Symbol,
		Quantity: h.Quantity.InexactFloat64(),
		LTP:      h.LTP.InexactFloat64(),
		AvgPrice: h.AvgPrice.InexactFloat64(),
	}
}

// NewHoldingsResponse builds the wire payload, always with a non-null list.
func NewHoldingsResponse(hs []Holding) HoldingsResponse {
	items := make([]WireHolding, 0, len(hs))
	for _, h := range hs {
		items = append(items, h.Wire())
	}
	return HoldingsResponse{Data: HoldingsPayload{UserHolding: items}}
}
