package webui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
	"github.com/dgnsrekt/strategy_studio/internal/render"
	"github.com/dgnsrekt/strategy_studio/internal/session"
)

type strategyCard struct {
	Key      string
	Strategy contract.Strategy
}

type homeView struct {
	Stage      string
	Prompt     string
	Intent     *contract.ParsedIntent
	Strategies []strategyCard
	Error      string
	Notice     string
}

type paramControl struct {
	Name  string
	Label string
	Value float64
	Spec  contract.ParamSpec
}

type proposalRow struct {
	Name     string
	Current  float64
	Proposed float64
}

type tradeRow struct {
	Date     string
	Type     string
	Price    string
	Quantity string
	PnL      string
	HasPnL   bool
	Gain     bool
}

type chartView struct {
	Labels    []string
	Portfolio string
	BuyHold   string
	HasChart  bool
}

type resultsView struct {
	TotalReturn string
	Sharpe      string
	MaxDrawdown string
	WinRate     string
	TradesCount int
	Trades      []tradeRow
	Chart       chartView
}

type strategyView struct {
	Key      string
	Strategy contract.Strategy
	Entry    []string
	Exit     []string
	Params   []paramControl
	Ticker   string
	Results  *resultsView
	Proposal []proposalRow
	Goal     string
	Error    string
	Notice   string
}

type libraryCard struct {
	Key      string
	Strategy contract.Strategy
	Return   string
	Sharpe   string
	Trades   string
	Gain     bool
	SavedAt  string
}

type libraryView struct {
	Cards     []libraryCard
	Query     string
	Count     int
	LastSaved string
	Error     string
	Notice    string
}

func buildStrategyCards(strategies []contract.Strategy) []strategyCard {
	cards := make([]strategyCard, 0, len(strategies))
	for i, s := range strategies {
		cards = append(cards, strategyCard{Key: session.Key(s, i), Strategy: s})
	}
	return cards
}

// buildParamControls assembles the ordered control panel from the strategy's
// own spec map, falling back to the stock set when it has none. Current
// parameter values override spec defaults.
func buildParamControls(s contract.Strategy) []paramControl {
	specs := s.ParamSpecs
	if len(specs) == 0 {
		specs = contract.FallbackParamSpecs()
	}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	controls := make([]paramControl, 0, len(names))
	for _, name := range names {
		spec := specs[name]
		value := spec.Default
		if v, ok := s.Parameters[name]; ok {
			value = v
		}
		controls = append(controls, paramControl{
			Name:  name,
			Label: paramLabel(name),
			Value: value,
			Spec:  spec,
		})
	}
	return controls
}

// paramLabel turns snake_case parameter names into display labels, e.g.
// "ma_fast" -> "Ma Fast".
func paramLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func buildProposalRows(current, proposed map[string]float64) []proposalRow {
	names := make([]string, 0, len(proposed))
	for name := range proposed {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]proposalRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, proposalRow{Name: name, Current: current[name], Proposed: proposed[name]})
	}
	return rows
}

func buildResultsView(r *contract.BacktestResults) *resultsView {
	if r == nil {
		return nil
	}
	view := &resultsView{
		TotalReturn: render.FormatPercent(r.TotalReturn),
		Sharpe:      render.FormatRatio(r.SharpeRatio),
		MaxDrawdown: render.FormatPercent(r.MaxDrawdown),
		WinRate:     render.FormatPercent(r.WinRate),
		TradesCount: r.TradesCount,
	}

	for _, t := range render.RecentTrades(r.Trades, render.RecentTradeLimit) {
		row := tradeRow{
			Date:     t.Date,
			Type:     strings.ToUpper(t.Type),
			Price:    render.FormatCurrency(t.Price),
			Quantity: fmt.Sprintf("%g", t.Quantity),
		}
		if t.PnL != nil {
			row.HasPnL = true
			row.Gain = *t.PnL >= 0
			row.PnL = render.FormatPnL(*t.PnL)
		}
		view.Trades = append(view.Trades, row)
	}

	series := render.BuildEquitySeries(r)
	view.Chart = chartView{
		Labels:    series.Labels,
		Portfolio: polylinePoints(series.Portfolio, series.Portfolio, series.BuyHold),
		BuyHold:   polylinePoints(series.BuyHold, series.Portfolio, series.BuyHold),
		HasChart:  len(series.Portfolio) > 1,
	}
	return view
}

const (
	chartWidth  = 640
	chartHeight = 220
)

// polylinePoints scales a value series into SVG polyline coordinates. The y
// range spans both series so the two curves share a scale.
func polylinePoints(values []float64, scaleOver ...[]float64) string {
	if len(values) < 2 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, series := range scaleOver {
		for _, v := range series {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * chartWidth
		y := chartHeight - (v-lo)/span*chartHeight
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

func buildLibraryCards(strategies []contract.Strategy) []libraryCard {
	cards := make([]libraryCard, 0, len(strategies))
	for i, s := range strategies {
		card := libraryCard{
			Key:      session.Key(s, i),
			Strategy: s,
			Return:   "N/A",
			Sharpe:   "N/A",
			Trades:   "N/A",
			SavedAt:  s.SavedAt,
		}
		if r := s.BacktestResults; r != nil {
			card.Return = render.FormatPercent(r.TotalReturn)
			card.Sharpe = render.FormatRatio(r.SharpeRatio)
			card.Trades = fmt.Sprintf("%d", r.TradesCount)
			card.Gain = r.TotalReturn >= 0
		}
		cards = append(cards, card)
	}
	return cards
}
