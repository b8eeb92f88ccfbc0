package ledgergen

import "os"

// ShowHelp prints usage information for the ledger generator.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Ledger Generator
================

Writes a synthetic donation ledger for exercising the raffle.

Usage:
  go run ./cmd/ledger-gen [options]

Options:
  -donors int
        Number of distinct donors (default 200)
  -max-gifts int
        Maximum donations per donor (default 4)
  -seed int
        Random seed; 0 uses the current time (default 0)
  -header
        Write a header row
  -variants
        Vary e-mail casing and whitespace on repeat donations (default true)
  -output string
        Output file (default: generated_ledger_TIMESTAMP.csv)
  -help
        Show this help message

Examples:
  go run ./cmd/ledger-gen -donors 1000 -seed 7 -output testdata/ledger.csv
  RAFFLE_LEDGER_FILE=testdata/ledger.csv go run ./cmd -diagnostics
`)
}
