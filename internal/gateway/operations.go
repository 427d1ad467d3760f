package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

// ParseIntent sends the free-text prompt for intent parsing. Both body keys
// are emitted because backend generations disagree on the field name.
func (c *Client) ParseIntent(ctx context.Context, prompt string) contract.Result[contract.ParsedIntent] {
	body := struct {
		UserPrompt string `json:"user_prompt"`
		Prompt     string `json:"prompt"`
	}{UserPrompt: prompt, Prompt: prompt}

	var out contract.ParsedIntent
	if err := c.postJSON(ctx, "/parse_intent", body, &out); err != nil {
		return contract.Fail[contract.ParsedIntent](failMessage(err, "Failed to parse intent"))
	}
	return contract.Ok(out)
}

// GenerateStrategies asks the backend to synthesize strategies for a parsed
// intent. The response is either {"strategies": [...]} or a bare array.
func (c *Client) GenerateStrategies(ctx context.Context, intent contract.ParsedIntent) contract.Result[[]contract.Strategy] {
	body := struct {
		ParsedIntent contract.ParsedIntent `json:"parsed_intent"`
	}{ParsedIntent: intent}

	var raw json.RawMessage
	if err := c.postJSON(ctx, "/create_strategies", body, &raw); err != nil {
		return contract.Fail[[]contract.Strategy](failMessage(err, "Failed to generate strategies"))
	}
	strategies, err := decodeStrategyList(raw)
	if err != nil {
		return contract.Fail[[]contract.Strategy]("Failed to generate strategies")
	}
	return contract.Ok(strategies)
}

// Backtest runs a historical simulation for ticker with the given parameters.
func (c *Client) Backtest(ctx context.Context, ticker string, params map[string]float64) contract.Result[contract.BacktestResults] {
	body := struct {
		Ticker string             `json:"ticker"`
		Params map[string]float64 `json:"strategy_params"`
	}{Ticker: ticker, Params: params}

	var out contract.BacktestResults
	if err := c.postJSON(ctx, "/backtest", body, &out); err != nil {
		return contract.Fail[contract.BacktestResults](failMessage(err, "Backtest failed"))
	}
	return contract.Ok(out)
}

// OptimizeStrategy asks the backend to search parameters for the given goal.
// The response is {"optimized_params": {...}} or a bare parameter map.
func (c *Client) OptimizeStrategy(ctx context.Context, ticker string, params map[string]float64, goal string) contract.Result[map[string]float64] {
	if goal == "" {
		goal = "sharpe"
	}
	body := struct {
		Ticker string             `json:"ticker"`
		Params map[string]float64 `json:"strategy_params"`
		Goal   string             `json:"optimization_goal"`
	}{Ticker: ticker, Params: params, Goal: goal}

	var raw json.RawMessage
	if err := c.postJSON(ctx, "/optimize", body, &raw); err != nil {
		return contract.Fail[map[string]float64](failMessage(err, "Optimization failed"))
	}

	var wrapped struct {
		OptimizedParams map[string]float64 `json:"optimized_params"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.OptimizedParams) > 0 {
		return contract.Ok(wrapped.OptimizedParams)
	}
	var bare map[string]float64
	if err := json.Unmarshal(raw, &bare); err != nil {
		return contract.Fail[map[string]float64]("Optimization failed")
	}
	return contract.Ok(bare)
}

// SaveStrategy persists a strategy to the user's library.
func (c *Client) SaveStrategy(ctx context.Context, strategy contract.Strategy) contract.Result[contract.SaveAck] {
	body := struct {
		StrategyData contract.Strategy `json:"strategy_data"`
	}{StrategyData: strategy}

	var out contract.SaveAck
	if err := c.postJSON(ctx, "/save_user_strategy", body, &out); err != nil {
		return contract.Fail[contract.SaveAck](failMessage(err, "Failed to save strategy"))
	}
	out.Success = true
	return contract.Ok(out)
}

// GetUserStrategies loads the user's saved library.
func (c *Client) GetUserStrategies(ctx context.Context) contract.Result[[]contract.Strategy] {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/user_library", nil, &raw); err != nil {
		return contract.Fail[[]contract.Strategy](failMessage(err, "Failed to load strategies"))
	}
	strategies, err := decodeStrategyList(raw)
	if err != nil {
		return contract.Fail[[]contract.Strategy]("Failed to load strategies")
	}
	return contract.Ok(strategies)
}

// SearchStock looks up symbol suggestions for a query. Both query keys are
// emitted, mirroring ParseIntent.
func (c *Client) SearchStock(ctx context.Context, query string) contract.Result[[]contract.StockMatch] {
	q := url.Values{}
	q.Set("q", query)
	q.Set("query", query)

	var out []contract.StockMatch
	if err := c.getJSON(ctx, "/search_stock", q, &out); err != nil {
		return contract.Fail[[]contract.StockMatch](failMessage(err, "Stock search failed"))
	}
	return contract.Ok(out)
}

// DeleteStrategy removes a saved strategy by id.
func (c *Client) DeleteStrategy(ctx context.Context, id string) contract.Result[bool] {
	if err := c.postJSON(ctx, "/delete_strategy/"+url.PathEscape(id), struct{}{}, nil); err != nil {
		return contract.Fail[bool](failMessage(err, "Failed to delete strategy"))
	}
	return contract.Ok(true)
}

// GetStrategy reads a single strategy through the alternate read path. Used
// when the per-session copy of a generated strategy is gone.
func (c *Client) GetStrategy(ctx context.Context, id string) contract.Result[contract.Strategy] {
	var out contract.Strategy
	if err := c.getJSON(ctx, "/api/strategies/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.Fail[contract.Strategy](failMessage(err, "Failed to load strategy"))
	}
	return contract.Ok(out)
}

func decodeStrategyList(raw json.RawMessage) ([]contract.Strategy, error) {
	var wrapped struct {
		Strategies []contract.Strategy `json:"strategies"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Strategies != nil {
		return wrapped.Strategies, nil
	}
	var bare []contract.Strategy
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}
