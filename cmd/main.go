package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/winnerpicker/internal/adapters/csvsource"
	"github.com/okian/winnerpicker/internal/adapters/report"
	app "github.com/okian/winnerpicker/internal/app"
	"github.com/okian/winnerpicker/internal/config"
	"github.com/okian/winnerpicker/internal/domain/draw"
	"github.com/okian/winnerpicker/internal/domain/scoring"
	"github.com/okian/winnerpicker/pkg/logger"
	"github.com/okian/winnerpicker/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds command-line overrides applied on top of the loaded config.
type flags struct {
	file        string
	diagnostics bool
	noDraw      bool
	json        bool
	seed        int64
	seedSet     bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("winnerpicker", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.file, "file", "", "Ledger CSV to read (overrides ledger_file)")
	fs.BoolVar(&f.diagnostics, "diagnostics", false, "Print per-donor totals and entries")
	fs.BoolVar(&f.noDraw, "no-draw", false, "Aggregate only; do not select a winner")
	fs.BoolVar(&f.json, "json", false, "Write the report as JSON")
	fs.Int64Var(&f.seed, "seed", 0, "Seed the draw for a reproducible audit run")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			f.seedSet = true
		}
	})
	return f, nil
}

// apply overlays the flags on cfg. Unset flags leave cfg untouched.
func (f *flags) apply(cfg *config.Config) {
	if f.file != "" {
		cfg.LedgerFile = f.file
	}
	if f.diagnostics {
		cfg.PrintDiagnostics = true
	}
	if f.noDraw {
		cfg.SelectWinner = false
	}
	if f.json {
		cfg.OutputFormat = config.OutputJSON
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := logger.InitWithWriter(stderr, logger.FormatText); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	fl, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return exitFailure
	}
	fl.apply(cfg)

	if err := logger.InitWithWriter(stderr, cfg.LogFormat); err != nil {
		_ = logger.InitWithWriter(stderr, logger.FormatText)
		logger.Get().Warn(ctx, "invalid log_format; falling back to text", logger.String("log_format", cfg.LogFormat))
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	code := raffle(ctx, cfg, fl, stdout, log)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsFile), logger.Error(err))
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

func raffle(ctx context.Context, cfg *config.Config, fl *flags, stdout io.Writer, log logger.Logger) int {
	src := csvsource.New(
		csvsource.WithColumns(cfg.DonationColumn, cfg.EmailColumn, cfg.NameColumn),
		csvsource.WithDelimiter(cfg.DelimiterRune()),
		csvsource.WithSkipHeader(cfg.SkipHeader),
	)
	records, err := src.ReadFile(ctx, cfg.LedgerFile)
	if err != nil {
		metrics.RecordValidationFailure(metrics.KindRow)
		log.Error(ctx, "failed to read ledger", logger.String("file", cfg.LedgerFile), logger.Error(err))
		return exitFailure
	}

	drawOpts := []draw.Option{}
	if fl.seedSet {
		drawOpts = append(drawOpts, draw.WithSeed(fl.seed))
		log.Info(ctx, "using seeded draw", logger.Int64("seed", fl.seed))
	}

	opts := []app.Option{
		app.WithLogger(log.Named("raffle")),
		app.WithAllocator(scoring.NewTieredAllocator(
			scoring.WithThreshold(cfg.EntryThreshold),
			scoring.WithDivisor(cfg.EntryDivisor),
		)),
		app.WithDrawer(draw.New(drawOpts...)),
		app.WithSelectWinner(cfg.SelectWinner),
	}
	// JSON output carries the standings inside the report instead.
	if cfg.PrintDiagnostics && cfg.OutputFormat == config.OutputText {
		opts = append(opts, app.WithDiagnostics(stdout))
	}

	res, err := app.New(opts...).Run(ctx, records)
	if err != nil {
		return exitFailure
	}

	switch cfg.OutputFormat {
	case config.OutputJSON:
		err = report.WriteJSON(stdout, res.Report(cfg.PrintDiagnostics))
	default:
		if res.Winner != nil {
			err = report.WriteWinner(stdout, *res.Winner)
		}
	}
	if err != nil {
		log.Error(ctx, "failed to write report", logger.Error(err))
		return exitFailure
	}
	return exitOK
}
