package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

// ErrActionInFlight is returned when an action is invoked while the same
// action is still running. Each action carries its own flag, so a running
// backtest never blocks an optimize or a save.
var ErrActionInFlight = errors.New("action already in progress")

// ErrMissingTicker is the local validation failure for actions that need one.
var ErrMissingTicker = errors.New("strategy has no ticker symbol")

// ErrNoPendingOptimization is returned by Accept/Discard with no proposal.
var ErrNoPendingOptimization = errors.New("no optimization result to apply")

// DetailBackend is the slice of the gateway the detail screen needs.
type DetailBackend interface {
	Backtest(ctx context.Context, ticker string, params map[string]float64) contract.Result[contract.BacktestResults]
	OptimizeStrategy(ctx context.Context, ticker string, params map[string]float64, goal string) contract.Result[map[string]float64]
	SaveStrategy(ctx context.Context, strategy contract.Strategy) contract.Result[contract.SaveAck]
}

// Detail holds the strategy-detail screen: one strategy value carried in from
// navigation, three mutually independent async actions, and an optimization
// proposal that only lands on explicit acceptance.
type Detail struct {
	backend DetailBackend

	mu          sync.Mutex
	strategy    contract.Strategy
	backtesting bool
	optimizing  bool
	saving      bool
	pending     map[string]float64
}

// NewDetail wraps the strategy the user navigated here with.
func NewDetail(backend DetailBackend, strategy contract.Strategy) *Detail {
	return &Detail{backend: backend, strategy: strategy}
}

// Strategy returns the current working copy.
func (d *Detail) Strategy() contract.Strategy {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.strategy
}

// Replace swaps in a new working copy, e.g. after editing the ticker or a
// parameter value. A pending optimization proposal is dropped because it was
// computed against the old values.
func (d *Detail) Replace(strategy contract.Strategy) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.strategy = strategy
	d.pending = nil
}

// Backtesting reports whether a backtest is in flight.
func (d *Detail) Backtesting() bool { d.mu.Lock(); defer d.mu.Unlock(); return d.backtesting }

// Optimizing reports whether an optimization is in flight.
func (d *Detail) Optimizing() bool { d.mu.Lock(); defer d.mu.Unlock(); return d.optimizing }

// Saving reports whether a save is in flight.
func (d *Detail) Saving() bool { d.mu.Lock(); defer d.mu.Unlock(); return d.saving }

// RunBacktest simulates the strategy and returns a copy merged with the
// results, ready to navigate to the results screen. The working copy itself
// is left untouched.
func (d *Detail) RunBacktest(ctx context.Context) (contract.Strategy, error) {
	d.mu.Lock()
	if d.backtesting {
		d.mu.Unlock()
		return contract.Strategy{}, ErrActionInFlight
	}
	if d.strategy.Ticker == "" {
		d.mu.Unlock()
		return contract.Strategy{}, ErrMissingTicker
	}
	d.backtesting = true
	strategy := d.strategy
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.backtesting = false
		d.mu.Unlock()
	}()

	res := d.backend.Backtest(ctx, strategy.Ticker, strategy.Parameters)
	if !res.OK {
		return contract.Strategy{}, errors.New(errText(res.Err, "Backtest failed"))
	}
	merged := strategy
	results := res.Data
	merged.BacktestResults = &results
	return merged, nil
}

// Optimize requests improved parameters for the given goal and parks them as
// a pending proposal. Nothing merges until AcceptOptimized.
func (d *Detail) Optimize(ctx context.Context, goal string) (map[string]float64, error) {
	d.mu.Lock()
	if d.optimizing {
		d.mu.Unlock()
		return nil, ErrActionInFlight
	}
	if d.strategy.Ticker == "" {
		d.mu.Unlock()
		return nil, ErrMissingTicker
	}
	d.optimizing = true
	strategy := d.strategy
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.optimizing = false
		d.mu.Unlock()
	}()

	res := d.backend.OptimizeStrategy(ctx, strategy.Ticker, strategy.Parameters, goal)
	if !res.OK {
		return nil, errors.New(errText(res.Err, "Optimization failed"))
	}

	d.mu.Lock()
	d.pending = res.Data
	d.mu.Unlock()
	return res.Data, nil
}

// PendingOptimization returns the proposal awaiting a decision, or nil.
func (d *Detail) PendingOptimization() map[string]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return nil
	}
	out := make(map[string]float64, len(d.pending))
	for k, v := range d.pending {
		out[k] = v
	}
	return out
}

// AcceptOptimized merges the pending proposal into the working copy's
// parameters. Keys the proposal does not mention keep their current values.
func (d *Detail) AcceptOptimized() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return ErrNoPendingOptimization
	}
	merged := d.strategy.CloneParameters()
	for k, v := range d.pending {
		merged[k] = v
	}
	d.strategy.Parameters = merged
	d.pending = nil
	return nil
}

// DiscardOptimized drops the proposal; the parameters stay exactly as they
// were before Optimize.
func (d *Detail) DiscardOptimized() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return ErrNoPendingOptimization
	}
	d.pending = nil
	return nil
}

// Save persists the working copy and returns the backend-assigned id.
func (d *Detail) Save(ctx context.Context) (string, error) {
	d.mu.Lock()
	if d.saving {
		d.mu.Unlock()
		return "", ErrActionInFlight
	}
	d.saving = true
	strategy := d.strategy
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.saving = false
		d.mu.Unlock()
	}()

	res := d.backend.SaveStrategy(ctx, strategy)
	if !res.OK {
		return "", errors.New(errText(res.Err, "Failed to save strategy"))
	}
	return res.Data.StrategyID, nil
}
