package webui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
	"github.com/dgnsrekt/strategy_studio/internal/session"
	"github.com/go-chi/chi/v5"
)

const paramFieldPrefix = "param_"

// resolveStrategy finds the working copy for a navigation key: the session
// first, then the backend's read path for saved strategies. Strategies pulled
// from the backend are adopted into the session so posts can tune them.
func (s *server) resolveStrategy(r *http.Request, key string) (contract.Strategy, string, bool) {
	sid := sessionID(r)
	if strat, ok := s.sessions.Strategy(sid, key); ok {
		return strat, key, true
	}
	if strings.HasPrefix(key, session.GeneratedKeyPrefix) {
		return contract.Strategy{}, "", false
	}
	res := s.backend.GetStrategy(r.Context(), key)
	if !res.OK {
		return contract.Strategy{}, "", false
	}
	adoptedKey := s.sessions.Adopt(sid, res.Data)
	return res.Data, adoptedKey, true
}

func (s *server) strategyViewFor(key string, strat contract.Strategy) strategyView {
	return strategyView{
		Key:      key,
		Strategy: strat,
		Entry:    strat.EntryConditions.Lines(),
		Exit:     strat.ExitConditions.Lines(),
		Params:   buildParamControls(strat),
		Ticker:   strat.Ticker,
		Results:  buildResultsView(strat.BacktestResults),
		Goal:     "sharpe",
	}
}

func (s *server) handleStrategyPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	strat, key, ok := s.resolveStrategy(r, key)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	view := s.strategyViewFor(key, strat)
	switch r.URL.Query().Get("notice") {
	case "optimized":
		view.Notice = "Parameters updated with optimized values"
	}
	renderPage(w, "strategy.html", view)
}

// collectParams reads the param_<name> form fields into a parameter map.
func collectParams(r *http.Request) map[string]float64 {
	_ = r.ParseForm()
	params := make(map[string]float64)
	for field, values := range r.PostForm {
		name, ok := strings.CutPrefix(field, paramFieldPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(values[0], 64); err == nil {
			params[name] = v
		}
	}
	return params
}

func (s *server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	strat, key, ok := s.resolveStrategy(r, key)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.FormValue("ticker")))
	if ticker == "" {
		view := s.strategyViewFor(key, strat)
		view.Error = "Please enter a stock ticker symbol."
		renderPage(w, "strategy.html", view)
		return
	}

	strat.Ticker = ticker
	strat.Parameters = collectParams(r)

	res := s.backend.Backtest(r.Context(), ticker, strat.Parameters)
	if !res.OK {
		s.sessions.UpdateStrategy(sessionID(r), key, strat)
		view := s.strategyViewFor(key, strat)
		view.Error = errOr(res.Err, "Backtest failed")
		renderPage(w, "strategy.html", view)
		return
	}

	results := res.Data
	strat.BacktestResults = &results
	s.sessions.UpdateStrategy(sessionID(r), key, strat)

	view := s.strategyViewFor(key, strat)
	view.Notice = "Backtest complete"
	renderPage(w, "strategy.html", view)
}

// handleOptimize fetches a parameter proposal and renders it next to the
// current values. Nothing is merged until the accept form posts back.
func (s *server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	strat, key, ok := s.resolveStrategy(r, key)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.FormValue("ticker")))
	if ticker == "" {
		view := s.strategyViewFor(key, strat)
		view.Error = "Please enter a stock ticker symbol before optimizing."
		renderPage(w, "strategy.html", view)
		return
	}

	current := collectParams(r)
	goal := r.FormValue("goal")
	if goal == "" {
		goal = "sharpe"
	}

	res := s.backend.OptimizeStrategy(r.Context(), ticker, current, goal)
	if !res.OK {
		view := s.strategyViewFor(key, strat)
		view.Ticker = ticker
		view.Error = errOr(res.Err, "Optimization failed")
		renderPage(w, "strategy.html", view)
		return
	}

	view := s.strategyViewFor(key, strat)
	view.Ticker = ticker
	view.Goal = goal
	view.Proposal = buildProposalRows(current, res.Data)
	renderPage(w, "strategy.html", view)
}

// handleOptimizeAccept merges the proposed values carried by the accept form
// into the working copy. Declining simply never posts here, leaving the
// parameters byte-for-byte unchanged.
func (s *server) handleOptimizeAccept(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	strat, key, ok := s.resolveStrategy(r, key)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	merged := strat.CloneParameters()
	for name, v := range collectParams(r) {
		merged[name] = v
	}
	strat.Parameters = merged
	if ticker := strings.ToUpper(strings.TrimSpace(r.FormValue("ticker"))); ticker != "" {
		strat.Ticker = ticker
	}
	s.sessions.UpdateStrategy(sessionID(r), key, strat)

	http.Redirect(w, r, "/strategy/"+key+"?notice=optimized", http.StatusSeeOther)
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	strat, key, ok := s.resolveStrategy(r, key)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		view := s.strategyViewFor(key, strat)
		view.Error = "Please enter a name for your strategy."
		renderPage(w, "strategy.html", view)
		return
	}
	if strat.BacktestResults == nil {
		view := s.strategyViewFor(key, strat)
		view.Error = "Please run a backtest before saving the strategy."
		renderPage(w, "strategy.html", view)
		return
	}

	strat.Name = name
	strat.Notes = strings.TrimSpace(r.FormValue("notes"))

	res := s.backend.SaveStrategy(r.Context(), strat)
	if !res.OK {
		view := s.strategyViewFor(key, strat)
		view.Error = errOr(res.Err, "Failed to save strategy")
		renderPage(w, "strategy.html", view)
		return
	}

	http.Redirect(w, r, "/library?notice=saved", http.StatusSeeOther)
}
