package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/winnerpicker/internal/ledgergen"
	"github.com/okian/winnerpicker/pkg/logger"
)

// Default configuration constants.
const (
	defaultDonors   = 200
	defaultMaxGifts = 4
)

func main() {
	var (
		donors     = flag.Int("donors", defaultDonors, "Number of distinct donors")
		maxGifts   = flag.Int("max-gifts", defaultMaxGifts, "Maximum donations per donor")
		seed       = flag.Int64("seed", 0, "Random seed; 0 uses the current time")
		header     = flag.Bool("header", false, "Write a header row")
		variants   = flag.Bool("variants", true, "Vary e-mail casing and whitespace on repeat donations")
		outputFile = flag.String("output", "", "Output file (default: generated_ledger_TIMESTAMP.csv)")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		ledgergen.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &ledgergen.Config{
		Donors:        *donors,
		MaxGifts:      *maxGifts,
		Seed:          *seed,
		Header:        *header,
		OutputFile:    *outputFile,
		VariantIdents: *variants,
	}

	if _, err := ledgergen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "ledger generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
