package render

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

func dates(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("2026-01-%02d", i+1)
	}
	return out
}

func TestLabelStep(t *testing.T) {
	cases := []struct {
		n, target, want int
	}{
		{0, 6, 1},
		{5, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{30, 6, 5},
		{31, 6, 6},
		{100, 6, 17},
	}
	for _, c := range cases {
		if got := LabelStep(c.n, c.target); got != c.want {
			t.Fatalf("LabelStep(%d, %d) = %d, want %d", c.n, c.target, got, c.want)
		}
	}
}

func TestDownsampleLabelsThirtyDates(t *testing.T) {
	got := DownsampleLabels(dates(30), ChartLabelTarget)
	want := []string{"2026-01-01", "2026-01-06", "2026-01-11", "2026-01-16", "2026-01-21", "2026-01-26"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DownsampleLabels() = %v, want %v", got, want)
	}
}

func TestDownsampleLabelsShortSeriesKeepsAll(t *testing.T) {
	got := DownsampleLabels(dates(4), ChartLabelTarget)
	if len(got) != 4 {
		t.Fatalf("DownsampleLabels() kept %d labels, want all 4", len(got))
	}
}

func TestRecentTradesKeepsLastTenInOrder(t *testing.T) {
	trades := make([]contract.Trade, 25)
	for i := range trades {
		trades[i] = contract.Trade{Date: fmt.Sprintf("2026-01-%02d", i+1)}
	}

	got := RecentTrades(trades, RecentTradeLimit)
	if len(got) != 10 {
		t.Fatalf("RecentTrades() returned %d, want 10", len(got))
	}
	if got[0].Date != "2026-01-16" || got[9].Date != "2026-01-25" {
		t.Fatalf("RecentTrades() window = %s..%s, want 2026-01-16..2026-01-25", got[0].Date, got[9].Date)
	}
}

func TestRecentTradesFewerThanLimit(t *testing.T) {
	trades := []contract.Trade{{Date: "a"}, {Date: "b"}}
	got := RecentTrades(trades, RecentTradeLimit)
	if len(got) != 2 || got[0].Date != "a" || got[1].Date != "b" {
		t.Fatalf("RecentTrades() = %v, want both trades in delivered order", got)
	}
}

func TestRecentTradesCopies(t *testing.T) {
	trades := []contract.Trade{{Date: "a"}}
	got := RecentTrades(trades, RecentTradeLimit)
	got[0].Date = "mutated"
	if trades[0].Date != "a" {
		t.Fatal("RecentTrades() must not alias the input slice")
	}
}

func TestBuildEquitySeries(t *testing.T) {
	r := &contract.BacktestResults{
		Dates:           dates(12),
		PortfolioValues: []float64{1, 2, 3},
		BuyHoldValues:   []float64{1, 1, 1},
	}
	s := BuildEquitySeries(r)
	if len(s.Labels) != 6 {
		t.Fatalf("Labels has %d entries, want 6", len(s.Labels))
	}
	if len(s.Portfolio) != 3 || len(s.BuyHold) != 3 {
		t.Fatal("value series must keep full resolution")
	}

	if got := BuildEquitySeries(nil); got.Labels != nil || got.Portfolio != nil {
		t.Fatalf("BuildEquitySeries(nil) = %+v, want zero value", got)
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.1234, "12.34%"},
		{0, "0.00%"},
		{-0.056, "-5.60%"},
		{1.5, "150.00%"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.in); got != c.want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.847); got != "1.85" {
		t.Fatalf("FormatRatio(1.847) = %q, want 1.85", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10432.5, "$10,432.50"},
		{0, "$0.00"},
		{999.999, "$1,000.00"},
		{-1250.75, "-$1,250.75"},
		{1234567.89, "$1,234,567.89"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(250.5); got != "+$250.50" {
		t.Fatalf("FormatPnL(250.5) = %q, want +$250.50", got)
	}
	if got := FormatPnL(-42); got != "-$42.00" {
		t.Fatalf("FormatPnL(-42) = %q, want -$42.00", got)
	}
}
