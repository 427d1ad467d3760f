package webui

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

func registerIntentHandlers(api huma.API, s *server) {
	type parseIntentInput struct {
		Body struct {
			Prompt string `json:"prompt" doc:"Free-text trading strategy prompt"`
		}
	}
	type parseIntentOutput struct {
		Body contract.ParsedIntent
	}
	huma.Register(api, huma.Operation{OperationID: "parse-intent", Method: http.MethodPost, Path: "/api/parse_intent", Summary: "Parse a strategy prompt into a structured intent", Tags: []string{"Intent"}},
		func(ctx context.Context, input *parseIntentInput) (*parseIntentOutput, error) {
			prompt := strings.TrimSpace(input.Body.Prompt)
			if prompt == "" {
				return nil, huma.Error422UnprocessableEntity("prompt must not be empty")
			}
			res := s.backend.ParseIntent(ctx, prompt)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &parseIntentOutput{}
			out.Body = res.Data
			return out, nil
		})

	type generateInput struct {
		Body struct {
			ParsedIntent contract.ParsedIntent `json:"parsed_intent"`
		}
	}
	type generateOutput struct {
		Body struct {
			Strategies []contract.Strategy `json:"strategies"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "generate-strategies", Method: http.MethodPost, Path: "/api/generate_strategies", Summary: "Generate candidate strategies for a parsed intent", Tags: []string{"Intent"}},
		func(ctx context.Context, input *generateInput) (*generateOutput, error) {
			res := s.backend.GenerateStrategies(ctx, input.Body.ParsedIntent)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &generateOutput{}
			out.Body.Strategies = res.Data
			if out.Body.Strategies == nil {
				out.Body.Strategies = []contract.Strategy{}
			}
			return out, nil
		})
}

func registerStrategyHandlers(api huma.API, s *server) {
	type backtestInput struct {
		Body struct {
			Ticker string             `json:"ticker" doc:"Stock ticker symbol"`
			Params map[string]float64 `json:"strategy_params"`
		}
	}
	type backtestOutput struct {
		Body contract.BacktestResults
	}
	huma.Register(api, huma.Operation{OperationID: "backtest", Method: http.MethodPost, Path: "/api/backtest", Summary: "Run a historical backtest", Tags: []string{"Strategy"}},
		func(ctx context.Context, input *backtestInput) (*backtestOutput, error) {
			ticker := strings.ToUpper(strings.TrimSpace(input.Body.Ticker))
			if ticker == "" {
				return nil, huma.Error422UnprocessableEntity("ticker must not be empty")
			}
			res := s.backend.Backtest(ctx, ticker, input.Body.Params)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &backtestOutput{}
			out.Body = res.Data
			return out, nil
		})

	type optimizeInput struct {
		Body struct {
			Ticker string             `json:"ticker"`
			Params map[string]float64 `json:"strategy_params"`
			Goal   string             `json:"optimization_goal,omitempty" doc:"Optimization target, defaults to sharpe" enum:"sharpe,return,drawdown"`
		}
	}
	type optimizeOutput struct {
		Body struct {
			OptimizedParams map[string]float64 `json:"optimized_params"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "optimize-strategy", Method: http.MethodPost, Path: "/api/optimize", Summary: "Search for better parameter values", Tags: []string{"Strategy"}},
		func(ctx context.Context, input *optimizeInput) (*optimizeOutput, error) {
			ticker := strings.ToUpper(strings.TrimSpace(input.Body.Ticker))
			if ticker == "" {
				return nil, huma.Error422UnprocessableEntity("ticker must not be empty")
			}
			res := s.backend.OptimizeStrategy(ctx, ticker, input.Body.Params, input.Body.Goal)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &optimizeOutput{}
			out.Body.OptimizedParams = res.Data
			return out, nil
		})

	type saveInput struct {
		Body struct {
			StrategyData contract.Strategy `json:"strategy_data"`
		}
	}
	type saveOutput struct {
		Body contract.SaveAck
	}
	huma.Register(api, huma.Operation{OperationID: "save-strategy", Method: http.MethodPost, Path: "/api/save_strategy", Summary: "Save a strategy to the user's library", Tags: []string{"Library"}},
		func(ctx context.Context, input *saveInput) (*saveOutput, error) {
			if strings.TrimSpace(input.Body.StrategyData.Name) == "" {
				return nil, huma.Error422UnprocessableEntity("strategy name must not be empty")
			}
			res := s.backend.SaveStrategy(ctx, input.Body.StrategyData)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &saveOutput{}
			out.Body = res.Data
			return out, nil
		})

	type listOutput struct {
		Body struct {
			Strategies []contract.Strategy `json:"strategies"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-user-strategies", Method: http.MethodGet, Path: "/api/user_strategies", Summary: "List the user's saved strategies", Tags: []string{"Library"}},
		func(ctx context.Context, input *struct{}) (*listOutput, error) {
			res := s.backend.GetUserStrategies(ctx)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &listOutput{}
			out.Body.Strategies = res.Data
			if out.Body.Strategies == nil {
				out.Body.Strategies = []contract.Strategy{}
			}
			return out, nil
		})

	type strategyIDInput struct {
		StrategyID string `path:"strategy_id"`
	}
	type getStrategyOutput struct {
		Body contract.Strategy
	}
	huma.Register(api, huma.Operation{OperationID: "get-strategy", Method: http.MethodGet, Path: "/api/strategies/{strategy_id}", Summary: "Get a saved strategy by id", Tags: []string{"Library"}},
		func(ctx context.Context, input *strategyIDInput) (*getStrategyOutput, error) {
			res := s.backend.GetStrategy(ctx, input.StrategyID)
			if !res.OK {
				return nil, huma.Error404NotFound(errOr(res.Err, "strategy not found"))
			}
			out := &getStrategyOutput{}
			out.Body = res.Data
			return out, nil
		})

	type deleteOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "delete-strategy", Method: http.MethodDelete, Path: "/api/strategies/{strategy_id}", Summary: "Delete a saved strategy", Tags: []string{"Library"}},
		func(ctx context.Context, input *strategyIDInput) (*deleteOutput, error) {
			res := s.backend.DeleteStrategy(ctx, input.StrategyID)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &deleteOutput{}
			out.Body.Status = "deleted"
			return out, nil
		})
}

func registerMiscHandlers(api huma.API, s *server) {
	type searchInput struct {
		Query string `query:"q" doc:"Ticker or company name fragment"`
	}
	type searchOutput struct {
		Body struct {
			Matches []contract.StockMatch `json:"matches"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "search-stock", Method: http.MethodGet, Path: "/api/search_stock", Summary: "Search ticker symbols", Tags: []string{"Symbols"}},
		func(ctx context.Context, input *searchInput) (*searchOutput, error) {
			query := strings.TrimSpace(input.Query)
			if query == "" {
				return nil, huma.Error400BadRequest("q must not be empty")
			}
			res := s.backend.SearchStock(ctx, query)
			if err := mapErr(res); err != nil {
				return nil, err
			}
			out := &searchOutput{}
			out.Body.Matches = res.Data
			if out.Body.Matches == nil {
				out.Body.Matches = []contract.StockMatch{}
			}
			return out, nil
		})

	type healthOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/health", Summary: "Health check", Tags: []string{"Health"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			out := &healthOutput{}
			out.Body.Status = "ok"
			return out, nil
		})
}
