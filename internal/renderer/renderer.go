package renderer

import (
	"fmt"
	"io"
	"strings"

	"holdings/internal/screen"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

const (
	Title         = "Upstox Holding"
	Currency      = money.INR
	chevronUp     = "⌃"
	chevronDown   = "⌄"
	DefaultStyle  = "notty"
	DefaultWrap   = 80
	profitAndLoss = "Profit & Loss"
)

// Rupees formats a two-decimal amount string with the currency sign.
// Strings that are not numbers are returned unchanged.
func Rupees(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return RupeesDecimal(d)
}

func RupeesDecimal(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(d.Mul(factor).Round(0).IntPart(), Currency).Display()
}

// Markdown lays the view out as a markdown document: the holdings list,
// then the summary panel with the toggle, optional details and the P&L line.
func Markdown(v screen.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)

	if v.Loading {
		b.WriteString("_Loading…_\n\n")
	}
	for _, h := range v.Holdings {
		fmt.Fprintf(&b, "**%s**  LTP: **%s**\n\n", h.Symbol, RupeesDecimal(h.LTP))
		fmt.Fprintf(&b, "%s  P/L: **%s**\n\n", h.Quantity.String(), RupeesDecimal(h.Profit))
		b.WriteString("---\n\n")
	}

	glyph := chevronUp
	if v.ShowDetails {
		glyph = chevronDown
	}
	fmt.Fprintf(&b, "%s\n\n", glyph)
	if v.ShowDetails {
		fmt.Fprintf(&b, "**Current Value:** %s\n\n", Rupees(v.CurrentValue))
		fmt.Fprintf(&b, "**Total Investment:** %s\n\n", Rupees(v.TotalInvestment))
	}
	fmt.Fprintf(&b, "**%s** %s\n", profitAndLoss, Rupees(v.TotalProfit))
	return b.String()
}

type Renderer struct {
	term *glamour.TermRenderer
}

// New builds a renderer for the given glamour style name ("notty", "dark",
// "light", ...).
func New(style string, wrap int) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	if wrap <= 0 {
		wrap = DefaultWrap
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("create term renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

func (r *Renderer) Render(w io.Writer, v screen.View) error {
	out, err := r.term.Render(Markdown(v))
	if err != nil {
		return fmt.Errorf("render holdings: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
