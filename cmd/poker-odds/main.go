package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/internal/config"
	"github.com/lox/pokerequity/internal/handeval"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

type CLI struct {
	Hands      []string      `arg:"" optional:"" help:"Two hands, e.g. 'AsAh 2c7d'"`
	Deal       bool          `short:"d" help:"Deal two random hands and a sample board"`
	Iterations int           `short:"i" help:"Number of Monte Carlo iterations (overrides config)"`
	Workers    int           `short:"w" help:"Number of simulation workers (overrides config)"`
	Seed       *int64        `help:"Random seed for reproducible results"`
	Timeout    time.Duration `short:"t" help:"Abandon the estimate after this long (0 disables)"`
	Config     string        `short:"c" default:"poker-odds.hcl" help:"Path to HCL configuration file"`
	LogLevel   string        `short:"l" help:"Log level (overrides config)"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e5e7eb"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f87171"))

	equityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-odds"),
		kong.Description("Estimate heads-up hold'em equity by Monte Carlo simulation"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(cfg.Level())

	runCtx := setupSignalHandler(logger)
	if err := run(runCtx, cli, cfg, os.Stdout, quartz.NewReal(), logger); err != nil {
		logger.Error("Equity estimate failed", "error", err)
		ctx.Exit(1)
	}
}

// apply copies command line overrides onto the loaded configuration.
func (c CLI) apply(cfg *config.Config) {
	if c.Iterations != 0 {
		cfg.Simulation.Iterations = c.Iterations
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, abandoning estimate", "signal", sig.String())
		cancel()
	}()

	return ctx
}

// withTimeout cancels the returned context once d has elapsed on clock.
func withTimeout(ctx context.Context, clock quartz.Clock, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	if d <= 0 {
		return ctx, cancel
	}
	timer := clock.AfterFunc(d, cancel)
	return ctx, func() {
		timer.Stop()
		cancel()
	}
}

func run(ctx context.Context, cli CLI, cfg *config.Config, out io.Writer, clock quartz.Clock, logger *log.Logger) error {
	seed := randutil.Seed(cfg.Simulation.Seed)
	logger.Debug("Using seed", "seed", seed)

	ev, err := handeval.New()
	if err != nil {
		return err
	}

	var holeA, holeB equity.HoleCards
	var preview *equity.Board
	if cli.Deal {
		m, err := equity.Deal(randutil.Stream(seed, 1<<32))
		if err != nil {
			return err
		}
		holeA, holeB, preview = m.HoleA, m.HoleB, &m.Board
	} else {
		holeA, holeB, err = parseHands(cli.Hands)
		if err != nil {
			return err
		}
	}

	runCtx, stop := withTimeout(ctx, clock, cli.Timeout)
	defer stop()

	start := clock.Now()
	result, err := equity.Estimate(runCtx, holeA, holeB, equity.Options{
		Iterations: cfg.Simulation.Iterations,
		Workers:    cfg.Simulation.Workers,
		Seed:       seed,
		Evaluator:  ev,
		Logger:     logger,
	})
	if errors.Is(err, equity.ErrCanceled) && ctx.Err() == nil {
		return fmt.Errorf("no estimate within %v: %w", cli.Timeout, err)
	}
	if err != nil {
		return err
	}
	duration := clock.Since(start)

	if preview != nil {
		displayPreview(out, ev, holeA, holeB, *preview)
	}
	displayResults(out, holeA, holeB, result, seed, duration)
	return nil
}

// parseHands accepts two hands given as separate arguments or in one quoted argument.
func parseHands(args []string) (equity.HoleCards, equity.HoleCards, error) {
	fields := strings.Fields(strings.Join(args, " "))
	if len(fields) != 2 {
		return equity.HoleCards{}, equity.HoleCards{}, fmt.Errorf("expected two hands (or --deal), got %d", len(fields))
	}

	hands := make([]equity.HoleCards, 2)
	for i, field := range fields {
		h, err := equity.ParseHoleCards(field)
		if err != nil {
			return equity.HoleCards{}, equity.HoleCards{}, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = h
	}
	return hands[0], hands[1], nil
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackCardStyle
		if c.IsRed() {
			style = redCardStyle
		}
		parts[i] = style.Render(c.Pretty())
	}
	return strings.Join(parts, " ")
}

func displayPreview(out io.Writer, ev *handeval.Evaluator, holeA, holeB equity.HoleCards, board equity.Board) {
	fmt.Fprintf(out, "%s\n", headerStyle.Render("sample board"))
	fmt.Fprintf(out, "%s\n", renderCards(board[:]))

	for i, hole := range []equity.HoleCards{holeA, holeB} {
		cards := append(hole[:], board[:]...)
		if desc, err := ev.Describe(cards); err == nil {
			fmt.Fprintf(out, "hand %c: %s\n", 'A'+i, desc)
		}
	}
	fmt.Fprintln(out)
}

func displayResults(out io.Writer, holeA, holeB equity.HoleCards, r equity.Result, seed int64, duration time.Duration) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("equity"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	rows := []struct {
		hole   equity.HoleCards
		equity float64
		win    float64
	}{
		{holeA, r.EquityA, r.WinRateA()},
		{holeB, r.EquityB, r.WinRateB()},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			renderCards(row.hole[:]),
			equityStyle.Render(fmt.Sprintf("%.1f%%", row.equity*100)),
			winStyle.Render(fmt.Sprintf("%.1f%%", row.win*100)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", r.TieRate()*100)))
	}
	w.Flush()

	lower, upper := r.ConfidenceInterval()
	fmt.Fprintf(out, "\n%s\n", footerStyle.Render(fmt.Sprintf(
		"%d iterations in %v (seed %d), 95%% CI for %s: %.1f%%-%.1f%%",
		r.Tally.Trials, duration.Truncate(time.Millisecond), seed, holeA, lower*100, upper*100)))
}
