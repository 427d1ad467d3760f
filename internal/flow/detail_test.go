package flow

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

type stubDetailBackend struct {
	backtestRes contract.Result[contract.BacktestResults]
	optimizeRes contract.Result[map[string]float64]
	saveRes     contract.Result[contract.SaveAck]

	backtestStarted chan struct{}
	backtestRelease chan struct{}
}

func (s *stubDetailBackend) Backtest(ctx context.Context, ticker string, params map[string]float64) contract.Result[contract.BacktestResults] {
	if s.backtestStarted != nil {
		close(s.backtestStarted)
		<-s.backtestRelease
	}
	return s.backtestRes
}

func (s *stubDetailBackend) OptimizeStrategy(ctx context.Context, ticker string, params map[string]float64, goal string) contract.Result[map[string]float64] {
	return s.optimizeRes
}

func (s *stubDetailBackend) SaveStrategy(ctx context.Context, strategy contract.Strategy) contract.Result[contract.SaveAck] {
	return s.saveRes
}

func baseStrategy() contract.Strategy {
	return contract.Strategy{
		Name:       "Momentum",
		Ticker:     "AAPL",
		Parameters: map[string]float64{"ma_fast": 10, "rsi_period": 14},
	}
}

func TestRunBacktestReturnsMergedCopy(t *testing.T) {
	backend := &stubDetailBackend{
		backtestRes: contract.Ok(contract.BacktestResults{TotalReturn: 0.25, TradesCount: 7}),
	}
	d := NewDetail(backend, baseStrategy())

	merged, err := d.RunBacktest(context.Background())
	if err != nil {
		t.Fatalf("RunBacktest() error = %v", err)
	}
	if merged.BacktestResults == nil || merged.BacktestResults.TradesCount != 7 {
		t.Fatalf("merged results = %+v, want trades_count 7", merged.BacktestResults)
	}
	if d.Strategy().BacktestResults != nil {
		t.Fatal("working copy should stay untouched until the caller replaces it")
	}
}

func TestRunBacktestRequiresTicker(t *testing.T) {
	d := NewDetail(&stubDetailBackend{}, contract.Strategy{Name: "No Ticker"})
	if _, err := d.RunBacktest(context.Background()); !errors.Is(err, ErrMissingTicker) {
		t.Fatalf("RunBacktest() error = %v, want ErrMissingTicker", err)
	}
}

func TestRunBacktestRejectsConcurrentCall(t *testing.T) {
	backend := &stubDetailBackend{
		backtestRes:     contract.Ok(contract.BacktestResults{}),
		backtestStarted: make(chan struct{}),
		backtestRelease: make(chan struct{}),
	}
	d := NewDetail(backend, baseStrategy())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.RunBacktest(context.Background())
	}()
	<-backend.backtestStarted

	if _, err := d.RunBacktest(context.Background()); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("second RunBacktest() error = %v, want ErrActionInFlight", err)
	}
	close(backend.backtestRelease)
	<-done

	if d.Backtesting() {
		t.Fatal("Backtesting() should be false after completion")
	}
}

func TestOptimizeDiscardLeavesParametersUntouched(t *testing.T) {
	backend := &stubDetailBackend{
		optimizeRes: contract.Ok(map[string]float64{"ma_fast": 12, "rsi_period": 10}),
	}
	d := NewDetail(backend, baseStrategy())
	before := d.Strategy().CloneParameters()

	if _, err := d.Optimize(context.Background(), "sharpe"); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if err := d.DiscardOptimized(); err != nil {
		t.Fatalf("DiscardOptimized() error = %v", err)
	}
	if got := d.Strategy().Parameters; !reflect.DeepEqual(got, before) {
		t.Fatalf("parameters after discard = %v, want %v", got, before)
	}
	if d.PendingOptimization() != nil {
		t.Fatal("pending proposal should be gone after discard")
	}
}

func TestOptimizeAcceptMergesOverCurrent(t *testing.T) {
	backend := &stubDetailBackend{
		optimizeRes: contract.Ok(map[string]float64{"ma_fast": 12}),
	}
	d := NewDetail(backend, baseStrategy())

	if _, err := d.Optimize(context.Background(), "sharpe"); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if err := d.AcceptOptimized(); err != nil {
		t.Fatalf("AcceptOptimized() error = %v", err)
	}
	want := map[string]float64{"ma_fast": 12, "rsi_period": 14}
	if got := d.Strategy().Parameters; !reflect.DeepEqual(got, want) {
		t.Fatalf("parameters after accept = %v, want %v", got, want)
	}
}

func TestAcceptWithoutProposal(t *testing.T) {
	d := NewDetail(&stubDetailBackend{}, baseStrategy())
	if err := d.AcceptOptimized(); !errors.Is(err, ErrNoPendingOptimization) {
		t.Fatalf("AcceptOptimized() error = %v, want ErrNoPendingOptimization", err)
	}
	if err := d.DiscardOptimized(); !errors.Is(err, ErrNoPendingOptimization) {
		t.Fatalf("DiscardOptimized() error = %v, want ErrNoPendingOptimization", err)
	}
}

func TestReplaceDropsPendingProposal(t *testing.T) {
	backend := &stubDetailBackend{
		optimizeRes: contract.Ok(map[string]float64{"ma_fast": 12}),
	}
	d := NewDetail(backend, baseStrategy())
	if _, err := d.Optimize(context.Background(), "sharpe"); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	edited := d.Strategy()
	edited.Ticker = "MSFT"
	d.Replace(edited)

	if d.PendingOptimization() != nil {
		t.Fatal("pending proposal should be dropped when the working copy changes")
	}
	if d.Strategy().Ticker != "MSFT" {
		t.Fatalf("Ticker = %q, want MSFT", d.Strategy().Ticker)
	}
}

func TestSaveReturnsBackendID(t *testing.T) {
	backend := &stubDetailBackend{
		saveRes: contract.Ok(contract.SaveAck{Success: true, StrategyID: "abc123"}),
	}
	d := NewDetail(backend, baseStrategy())

	id, err := d.Save(context.Background())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id != "abc123" {
		t.Fatalf("Save() id = %q, want abc123", id)
	}
}

func TestSaveFailureSurfacesMessage(t *testing.T) {
	backend := &stubDetailBackend{
		saveRes: contract.Fail[contract.SaveAck]("Failed to save strategy"),
	}
	d := NewDetail(backend, baseStrategy())

	if _, err := d.Save(context.Background()); err == nil || err.Error() != "Failed to save strategy" {
		t.Fatalf("Save() error = %v, want backend message", err)
	}
	if d.Saving() {
		t.Fatal("Saving() should clear after a failure")
	}
}
