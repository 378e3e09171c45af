package renderer

import (
	"bytes"
	"strings"
	"testing"

	"holdings/internal/aggregator"
	"holdings/internal/models"
	"holdings/internal/screen"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView(show bool) screen.View {
	items, totals := aggregator.Aggregate([]models.Holding{
		{Symbol: "TCS", Quantity: decimal.NewFromInt(10), LTP: decimal.NewFromInt(3500), AvgPrice: decimal.NewFromInt(3000)},
		{Symbol: "INFY", Quantity: decimal.NewFromInt(5), LTP: decimal.NewFromInt(1400), AvgPrice: decimal.NewFromInt(1500)},
	})
	return screen.View{
		Holdings:        items,
		TotalInvestment: totals.TotalInvestmentString(),
		CurrentValue:    totals.CurrentValueString(),
		TotalProfit:     totals.ProfitString(),
		ShowDetails:     show,
	}
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹5,000.00", Rupees("5000.00"))
	assert.Equal(t, "-₹500.00", Rupees("-500.00"))
	assert.Equal(t, "₹0.00", Rupees("0.00"))
	assert.Equal(t, "n/a", Rupees("n/a"))
}

func TestMarkdown_Collapsed(t *testing.T) {
	md := Markdown(sampleView(false))
	assert.Contains(t, md, "# "+Title)
	assert.Contains(t, md, "**TCS**  LTP: **₹3,500.00**")
	assert.Contains(t, md, "10  P/L: **₹5,000.00**")
	assert.Contains(t, md, "5  P/L: **-₹500.00**")
	assert.Contains(t, md, chevronUp)
	assert.Contains(t, md, "**Profit & Loss** ₹4,500.00")
	assert.NotContains(t, md, "Current Value")
	assert.NotContains(t, md, "Total Investment")
	assert.Less(t, strings.Index(md, "TCS"), strings.Index(md, "INFY"))
}

func TestMarkdown_Expanded(t *testing.T) {
	md := Markdown(sampleView(true))
	assert.Contains(t, md, chevronDown)
	assert.Contains(t, md, "**Current Value:** ₹42,000.00")
	assert.Contains(t, md, "**Total Investment:** ₹37,500.00")
	assert.Less(t, strings.Index(md, "Current Value"), strings.Index(md, profitAndLoss))
}

func TestMarkdown_EmptyLoading(t *testing.T) {
	md := Markdown(screen.View{TotalInvestment: "0.00", CurrentValue: "0.00", TotalProfit: "0.00", Loading: true})
	assert.Contains(t, md, "Loading")
	assert.Contains(t, md, "**Profit & Loss** ₹0.00")
}

func TestRenderer_Render(t *testing.T) {
	r, err := New("", 0)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleView(true)))
	out := buf.String()
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "TCS")
	assert.Contains(t, out, "INFY")
	assert.Contains(t, out, "Profit & Loss")
}
