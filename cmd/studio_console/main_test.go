package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

func TestPrintResultsNilRendersNoResultsState(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, nil)
	if !strings.Contains(buf.String(), "No backtest results available") {
		t.Fatalf("printResults(nil) output = %q, want the no-results message", buf.String())
	}
}

func TestPrintResultsRendersMetrics(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, &contract.BacktestResults{
		TotalReturn: 0.25,
		SharpeRatio: 1.8,
		WinRate:     0.6,
		TradesCount: 7,
	})
	out := buf.String()
	if strings.Contains(out, "No backtest results available") {
		t.Fatal("metrics output should not carry the no-results message")
	}
	for _, want := range []string{"25.00%", "1.80", "60.00%", "7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("printResults() output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintStrategyShowsConditions(t *testing.T) {
	var buf bytes.Buffer
	printStrategy(&buf, contract.Strategy{
		Name:            "Momentum",
		Description:     "Buys strength",
		Ticker:          "AAPL",
		EntryConditions: contract.TextOf("RSI below 30"),
		ExitConditions:  contract.ListOf("RSI above 70"),
	})
	out := buf.String()
	for _, want := range []string{"Momentum", "Ticker: AAPL", "RSI below 30", "RSI above 70"} {
		if !strings.Contains(out, want) {
			t.Fatalf("printStrategy() output missing %q:\n%s", want, out)
		}
	}
}
