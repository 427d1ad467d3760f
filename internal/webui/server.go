// Package webui serves the web front-end: server-rendered pages for the
// prompt flow, the strategy tinker screen and the library, plus a typed JSON
// surface mirroring the backend contract for progressive enhancement. Every
// backend interaction goes through the gateway; this layer owns no domain
// logic.
package webui

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dgnsrekt/strategy_studio/internal/contract"
	"github.com/dgnsrekt/strategy_studio/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
)

// Backend is the gateway surface the web layer consumes.
type Backend interface {
	ParseIntent(ctx context.Context, prompt string) contract.Result[contract.ParsedIntent]
	GenerateStrategies(ctx context.Context, intent contract.ParsedIntent) contract.Result[[]contract.Strategy]
	Backtest(ctx context.Context, ticker string, params map[string]float64) contract.Result[contract.BacktestResults]
	OptimizeStrategy(ctx context.Context, ticker string, params map[string]float64, goal string) contract.Result[map[string]float64]
	SaveStrategy(ctx context.Context, strategy contract.Strategy) contract.Result[contract.SaveAck]
	GetUserStrategies(ctx context.Context) contract.Result[[]contract.Strategy]
	SearchStock(ctx context.Context, query string) contract.Result[[]contract.StockMatch]
	DeleteStrategy(ctx context.Context, id string) contract.Result[bool]
	GetStrategy(ctx context.Context, id string) contract.Result[contract.Strategy]
}

// Options tunes the server.
type Options struct {
	SessionCookie string
}

type server struct {
	backend  Backend
	sessions *session.Store
	cookie   string
}

// NewServer wires the router: pages, JSON operations and docs.
func NewServer(backend Backend, sessions *session.Store, opts Options) http.Handler {
	cookie := opts.SessionCookie
	if cookie == "" {
		cookie = "studio_session"
	}
	s := &server{backend: backend, sessions: sessions, cookie: cookie}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(s.withSession)

	cfg := huma.DefaultConfig("Strategy Studio API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(docsHTML)); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})

	// Pages.
	router.Get("/", s.handleHome)
	router.Post("/", s.handlePromptSubmit)
	router.Post("/reset", s.handleReset)
	router.Get("/strategy/{key}", s.handleStrategyPage)
	router.Post("/strategy/{key}/backtest", s.handleBacktest)
	router.Post("/strategy/{key}/optimize", s.handleOptimize)
	router.Post("/strategy/{key}/optimize/accept", s.handleOptimizeAccept)
	router.Post("/strategy/{key}/save", s.handleSave)
	router.Get("/library", s.handleLibrary)
	router.Post("/delete_strategy/{id}", s.handleDelete)

	registerIntentHandlers(api, s)
	registerStrategyHandlers(api, s)
	registerMiscHandlers(api, s)

	return router
}

// mapErr converts a failed gateway envelope into a huma error response. The
// backend is an external collaborator, so its failures surface as 502 with
// the user-facing message the gateway resolved to.
func mapErr[T any](res contract.Result[T]) error {
	if res.OK {
		return nil
	}
	msg := res.Err
	if msg == "" {
		msg = "backend request failed"
	}
	return huma.Error502BadGateway(msg)
}
