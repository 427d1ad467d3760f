// Command studio_console is the terminal front-end: the same
// prompt → strategies → backtest flow as the web UI, driven by line input.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dgnsrekt/strategy_studio/internal/config"
	"github.com/dgnsrekt/strategy_studio/internal/contract"
	"github.com/dgnsrekt/strategy_studio/internal/flow"
	"github.com/dgnsrekt/strategy_studio/internal/gateway"
	"github.com/dgnsrekt/strategy_studio/internal/render"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		slog.Error("failed to load console config", "error", err)
		os.Exit(1)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	slog.Info("console config loaded",
		"backend_url", cfg.Backend.BaseURL,
		"request_timeout_ms", cfg.Backend.TimeoutMS,
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
	)

	backend := gateway.New(gateway.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout(),
	})

	app := &console{
		backend: backend,
		prompt:  flow.NewPromptFlow(backend),
		library: flow.NewLibrary(backend),
		in:      bufio.NewScanner(os.Stdin),
	}
	app.run(context.Background())
}

type console struct {
	backend *gateway.Client
	prompt  *flow.PromptFlow
	library *flow.Library
	in      *bufio.Scanner
}

func (c *console) run(ctx context.Context) {
	fmt.Println("Strategy Studio")
	fmt.Println("Describe a trading strategy in plain English, or type a command.")
	fmt.Println("Commands: list, open <n>, library, search <query>, reset, quit")

	for {
		fmt.Print("> ")
		line, ok := c.readLine()
		if !ok {
			return
		}
		cmd, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "quit", "exit":
			return
		case "reset":
			c.prompt.Reset()
			fmt.Println("Cleared. Enter a new prompt.")
		case "list":
			c.showStrategies()
		case "open":
			c.openStrategy(ctx, rest)
		case "library":
			c.showLibrary(ctx, "")
		case "search":
			c.searchStock(ctx, rest)
		default:
			c.submitPrompt(ctx, line)
		}
	}
}

func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) submitPrompt(ctx context.Context, prompt string) {
	fmt.Println("Parsing your request...")
	if err := c.prompt.Submit(ctx, prompt); err != nil {
		fmt.Println("Error:", err)
		if c.prompt.Stage() == flow.StageParsed {
			c.showIntent()
		}
		return
	}
	c.showIntent()
	c.showStrategies()
}

func (c *console) showIntent() {
	intent := c.prompt.Intent()
	if intent == nil {
		return
	}
	fmt.Println("\nParsed intent:")
	if intent.Ticker != "" {
		fmt.Println("  Ticker:    ", intent.Ticker)
	}
	if intent.StrategyType != "" {
		fmt.Println("  Type:      ", intent.StrategyType)
	}
	if intent.Timeframe != "" {
		fmt.Println("  Timeframe: ", intent.Timeframe)
	}
	if intent.RiskTolerance != "" {
		fmt.Println("  Risk:      ", intent.RiskTolerance)
	}
	if len(intent.Indicators) > 0 {
		fmt.Println("  Indicators:", strings.Join(intent.Indicators, ", "))
	}
	if intent.Summary != "" {
		fmt.Println("  Summary:   ", intent.Summary)
	}
}

func (c *console) showStrategies() {
	strategies := c.prompt.Strategies()
	if len(strategies) == 0 {
		fmt.Println("No strategies yet. Enter a prompt first.")
		return
	}
	fmt.Println("\nGenerated strategies:")
	for i, s := range strategies {
		fmt.Printf("  [%d] %s\n      %s\n", i+1, s.Name, s.Description)
	}
	fmt.Println("Type 'open <n>' to tune and backtest one.")
}

func (c *console) openStrategy(ctx context.Context, arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		fmt.Println("Usage: open <n>")
		return
	}
	strategy, err := c.prompt.Select(n - 1)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	c.detailLoop(ctx, strategy)
}

func (c *console) detailLoop(ctx context.Context, strategy contract.Strategy) {
	detail := flow.NewDetail(c.backend, strategy)
	printStrategy(os.Stdout, detail.Strategy())
	printResults(os.Stdout, detail.Strategy().BacktestResults)
	fmt.Println("Detail commands: show, ticker <sym>, set <param> <value>, backtest, optimize [goal], save [name], back")

	for {
		fmt.Print("strategy> ")
		line, ok := c.readLine()
		if !ok {
			return
		}
		cmd, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "back":
			return
		case "show":
			printStrategy(os.Stdout, detail.Strategy())
			printResults(os.Stdout, detail.Strategy().BacktestResults)
		case "ticker":
			c.setTicker(detail, rest)
		case "set":
			c.setParam(detail, rest)
		case "backtest":
			c.runBacktest(ctx, detail)
		case "optimize":
			c.runOptimize(ctx, detail, rest)
		case "save":
			c.runSave(ctx, detail, rest)
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (c *console) setTicker(detail *flow.Detail, arg string) {
	ticker := strings.ToUpper(strings.TrimSpace(arg))
	if ticker == "" {
		fmt.Println("Usage: ticker <symbol>")
		return
	}
	s := detail.Strategy()
	s.Ticker = ticker
	detail.Replace(s)
	fmt.Println("Ticker set to", ticker)
}

func (c *console) setParam(detail *flow.Detail, arg string) {
	name, raw, found := strings.Cut(strings.TrimSpace(arg), " ")
	if !found {
		fmt.Println("Usage: set <param> <value>")
		return
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		fmt.Println("Not a number:", raw)
		return
	}
	s := detail.Strategy()
	params := s.CloneParameters()
	params[name] = value
	s.Parameters = params
	detail.Replace(s)
	fmt.Printf("%s = %g\n", name, value)
}

func (c *console) runBacktest(ctx context.Context, detail *flow.Detail) {
	fmt.Println("Running backtest...")
	merged, err := detail.RunBacktest(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	detail.Replace(merged)
	printResults(os.Stdout, merged.BacktestResults)
}

func (c *console) runOptimize(ctx context.Context, detail *flow.Detail, goal string) {
	goal = strings.TrimSpace(goal)
	fmt.Println("Optimizing parameters...")
	proposed, err := detail.Optimize(ctx, goal)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	current := detail.Strategy().Parameters
	fmt.Println("\nProposed parameters:")
	for name, v := range proposed {
		fmt.Printf("  %-18s %g -> %g\n", name, current[name], v)
	}
	fmt.Print("Apply these values? [y/N] ")
	answer, ok := c.readLine()
	if ok && strings.EqualFold(answer, "y") {
		if err := detail.AcceptOptimized(); err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Println("Parameters updated with optimized values.")
		return
	}
	if err := detail.DiscardOptimized(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Keeping current parameters.")
}

func (c *console) runSave(ctx context.Context, detail *flow.Detail, name string) {
	if name = strings.TrimSpace(name); name != "" {
		s := detail.Strategy()
		s.Name = name
		detail.Replace(s)
	}
	id, err := detail.Save(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if id != "" {
		fmt.Println("Saved to your library as", id)
	} else {
		fmt.Println("Saved to your library.")
	}
}

func (c *console) showLibrary(ctx context.Context, term string) {
	if err := c.library.Load(ctx); err != nil {
		fmt.Println("Error:", err)
		return
	}
	strategies := c.library.Filter(term)
	count, lastSaved := c.library.Stats()
	fmt.Printf("\nYour library: %d saved", count)
	if lastSaved != "" {
		fmt.Printf(", last saved %s", lastSaved)
	}
	fmt.Println()
	for i, s := range strategies {
		line := fmt.Sprintf("  [%d] %s", i+1, s.Name)
		if s.Ticker != "" {
			line += " (" + s.Ticker + ")"
		}
		if r := s.BacktestResults; r != nil {
			line += " return " + render.FormatPercent(r.TotalReturn)
		}
		fmt.Println(line)
	}
}

func (c *console) searchStock(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Println("Usage: search <ticker or company>")
		return
	}
	res := c.backend.SearchStock(ctx, query)
	if !res.OK {
		fmt.Println("Error:", res.Err)
		return
	}
	if len(res.Data) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, m := range res.Data {
		fmt.Printf("  %-8s %s", m.Symbol, m.Name)
		if m.Exchange != "" {
			fmt.Printf(" (%s)", m.Exchange)
		}
		fmt.Println()
	}
}

func printStrategy(w io.Writer, s contract.Strategy) {
	fmt.Fprintln(w, "\n"+s.Name)
	fmt.Fprintln(w, s.Description)
	if s.Ticker != "" {
		fmt.Fprintln(w, "Ticker:", s.Ticker)
	}
	if len(s.Indicators) > 0 {
		fmt.Fprintln(w, "Indicators:", strings.Join(s.Indicators, ", "))
	}
	if entry := s.EntryConditions.Lines(); len(entry) > 0 {
		fmt.Fprintln(w, "Entry:")
		for _, line := range entry {
			fmt.Fprintln(w, "  -", line)
		}
	}
	if exit := s.ExitConditions.Lines(); len(exit) > 0 {
		fmt.Fprintln(w, "Exit:")
		for _, line := range exit {
			fmt.Fprintln(w, "  -", line)
		}
	}
	if len(s.Parameters) > 0 {
		fmt.Fprintln(w, "Parameters:")
		for name, v := range s.Parameters {
			fmt.Fprintf(w, "  %-18s %g\n", name, v)
		}
	}
}

// printResults renders the results panel; the absence of results is its own
// display state, not a blank.
func printResults(w io.Writer, r *contract.BacktestResults) {
	if r == nil {
		fmt.Fprintln(w, "\nNo backtest results available. Run 'backtest' to see how this strategy performs.")
		return
	}
	fmt.Fprintln(w, "\nBacktest results:")
	fmt.Fprintln(w, "  Total return:", render.FormatPercent(r.TotalReturn))
	fmt.Fprintln(w, "  Sharpe ratio:", render.FormatRatio(r.SharpeRatio))
	fmt.Fprintln(w, "  Max drawdown:", render.FormatPercent(r.MaxDrawdown))
	fmt.Fprintln(w, "  Win rate:    ", render.FormatPercent(r.WinRate))
	fmt.Fprintln(w, "  Trades:      ", r.TradesCount)

	series := render.BuildEquitySeries(r)
	if len(series.Labels) > 0 {
		fmt.Fprintln(w, "  Chart dates: ", strings.Join(series.Labels, " | "))
	}

	trades := render.RecentTrades(r.Trades, render.RecentTradeLimit)
	if len(trades) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent trades:")
	for _, t := range trades {
		line := fmt.Sprintf("  %s %-4s %s x%g", t.Date, strings.ToUpper(t.Type), render.FormatCurrency(t.Price), t.Quantity)
		if t.PnL != nil {
			line += "  " + render.FormatPnL(*t.PnL)
		}
		fmt.Fprintln(w, line)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
