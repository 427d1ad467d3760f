// Package contract holds the request/response shapes exchanged with the
// strategy backend. Every type here is created by a backend response and held
// only as per-screen view state; nothing is persisted client-side.
package contract

// ParsedIntent is the backend's structured interpretation of a free-text
// trading request. Immutable once received.
type ParsedIntent struct {
	Action            string   `json:"action,omitempty"`
	Ticker            string   `json:"ticker,omitempty"`
	Timeframe         string   `json:"timeframe,omitempty"`
	StrategyType      string   `json:"strategy_type,omitempty"`
	Indicators        []string `json:"indicators,omitempty"`
	RiskTolerance     string   `json:"risk_tolerance,omitempty"`
	InvestmentHorizon string   `json:"investment_horizon,omitempty"`
	MarketConditions  string   `json:"market_conditions,omitempty"`

	// Emitted by newer backend builds alongside the fields above.
	Summary     string `json:"summary,omitempty"`
	Goal        string `json:"goal,omitempty"`
	RiskLevel   int    `json:"risk_level,omitempty"`
	TimeHorizon string `json:"time_horizon,omitempty"`
	Style       string `json:"style,omitempty"`
}

// RiskManagement holds a strategy's risk controls, all in percent.
type RiskManagement struct {
	StopLoss     float64 `json:"stop_loss"`
	TakeProfit   float64 `json:"take_profit"`
	PositionSize float64 `json:"position_size"`
}

// ParamSpec describes one tunable strategy parameter for the control panel.
type ParamSpec struct {
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Description string  `json:"description,omitempty"`
}

// Strategy is a named, parameterized trading rule set produced by the backend.
// ID is present for saved strategies; freshly generated ones are addressed by
// an index-based key until saved.
type Strategy struct {
	ID              string               `json:"id,omitempty"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Ticker          string               `json:"ticker"`
	Timeframe       string               `json:"timeframe,omitempty"`
	Indicators      []string             `json:"indicators,omitempty"`
	EntryConditions TextOrList           `json:"entry_conditions"`
	ExitConditions  TextOrList           `json:"exit_conditions"`
	RiskManagement  RiskManagement       `json:"risk_management"`
	Parameters      map[string]float64   `json:"parameters"`
	ParamSpecs      map[string]ParamSpec `json:"param_specs,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	SavedAt         string               `json:"saved_at,omitempty"`
	BacktestResults *BacktestResults     `json:"backtestResults,omitempty"`
}

// CloneParameters returns an independent copy of the parameter map so a
// working copy can be tuned without touching the original.
func (s Strategy) CloneParameters() map[string]float64 {
	out := make(map[string]float64, len(s.Parameters))
	for k, v := range s.Parameters {
		out[k] = v
	}
	return out
}

// Trade is one entry in a backtest's trade log.
type Trade struct {
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Price    float64  `json:"price"`
	Quantity float64  `json:"quantity"`
	PnL      *float64 `json:"pnl,omitempty"`
}

// BacktestResults carries the metrics and series of a historical simulation.
// PortfolioValues, BuyHoldValues and Dates are positionally aligned; the
// renderer assumes equal length and shared date ordering.
type BacktestResults struct {
	TotalReturn     float64   `json:"total_return"`
	SharpeRatio     float64   `json:"sharpe_ratio"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	WinRate         float64   `json:"win_rate"`
	TradesCount     int       `json:"trades_count"`
	PortfolioValues []float64 `json:"portfolio_values"`
	BuyHoldValues   []float64 `json:"buy_hold_values"`
	Dates           []string  `json:"dates"`
	Trades          []Trade   `json:"trades"`
}

// StockMatch is one symbol suggestion from the stock search endpoint.
type StockMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// SaveAck acknowledges a persisted strategy.
type SaveAck struct {
	Success    bool   `json:"success"`
	StrategyID string `json:"strategy_id,omitempty"`
}

// FallbackParamSpecs is the control-panel parameter set used when a strategy
// arrives without its own spec map.
func FallbackParamSpecs() map[string]ParamSpec {
	return map[string]ParamSpec{
		"ma_fast":         {Default: 10, Min: 2, Max: 50, Step: 1, Description: "Fast Moving Average Period"},
		"ma_slow":         {Default: 50, Min: 10, Max: 200, Step: 1, Description: "Slow Moving Average Period"},
		"rsi_period":      {Default: 14, Min: 2, Max: 30, Step: 1, Description: "RSI Period"},
		"rsi_oversold":    {Default: 30, Min: 10, Max: 40, Step: 1, Description: "RSI Oversold Level"},
		"rsi_overbought":  {Default: 70, Min: 60, Max: 90, Step: 1, Description: "RSI Overbought Level"},
		"stop_loss_pct":   {Default: 5, Min: 1, Max: 20, Step: 0.5, Description: "Stop Loss Percentage"},
		"take_profit_pct": {Default: 10, Min: 2, Max: 50, Step: 0.5, Description: "Take Profit Percentage"},
		"position_size":   {Default: 1.0, Min: 0.1, Max: 1, Step: 0.1, Description: "Position Size (0.1-1.0)"},
	}
}
