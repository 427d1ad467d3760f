// Package render holds the pure presentation helpers shared by both
// front-ends: chart label downsampling, trade-log windowing and number
// formatting. Nothing here mutates the DTOs it is handed.
package render

import (
	"strings"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
	"github.com/shopspring/decimal"
)

// ChartLabelTarget is the approximate number of date labels on the x axis.
const ChartLabelTarget = 6

// RecentTradeLimit caps the trade log shown on the results screen.
const RecentTradeLimit = 10

// LabelStep returns the sampling stride for n labels targeting roughly
// target ticks: ceil(n/target).
func LabelStep(n, target int) int {
	if target <= 0 || n <= 0 {
		return 1
	}
	step := (n + target - 1) / target
	if step < 1 {
		step = 1
	}
	return step
}

// DownsampleLabels keeps every step-th date (index % step == 0) so the axis
// stays readable while the value series plots at full resolution.
func DownsampleLabels(dates []string, target int) []string {
	step := LabelStep(len(dates), target)
	out := make([]string, 0, target+1)
	for i, d := range dates {
		if i%step == 0 {
			out = append(out, d)
		}
	}
	return out
}

// RecentTrades returns the most recent limit trades, newest last, in the
// exact order the backend delivered them.
func RecentTrades(trades []contract.Trade, limit int) []contract.Trade {
	if limit <= 0 || len(trades) == 0 {
		return nil
	}
	if len(trades) > limit {
		trades = trades[len(trades)-limit:]
	}
	out := make([]contract.Trade, len(trades))
	copy(out, trades)
	return out
}

// EquitySeries is a render-ready view of a backtest's value curves.
type EquitySeries struct {
	Labels    []string
	Portfolio []float64
	BuyHold   []float64
}

// BuildEquitySeries assembles the chart data: full-resolution values with a
// downsampled date axis.
func BuildEquitySeries(r *contract.BacktestResults) EquitySeries {
	if r == nil {
		return EquitySeries{}
	}
	return EquitySeries{
		Labels:    DownsampleLabels(r.Dates, ChartLabelTarget),
		Portfolio: r.PortfolioValues,
		BuyHold:   r.BuyHoldValues,
	}
}

// FormatPercent renders a fractional value as a fixed two-decimal percentage,
// e.g. 0.1234 -> "12.34%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatRatio renders a plain metric (Sharpe and friends) with two decimals.
func FormatRatio(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatCurrency renders a dollar amount with thousands grouping and two
// decimals, e.g. 10432.5 -> "$10,432.50".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPnL renders a signed trade P&L, prefixing gains with "+".
func FormatPnL(v float64) string {
	if v >= 0 {
		return "+" + FormatCurrency(v)
	}
	return FormatCurrency(v)
}
