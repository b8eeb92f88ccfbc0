package ledgergen

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds configuration for generating a synthetic ledger.
type Config struct {
	Donors        int    // distinct donors to generate
	MaxGifts      int    // upper bound of donations per donor
	Seed          int64  // 0 picks a time-based seed
	Header        bool   // write a header row
	OutputFile    string // output path; empty generates a timestamped name
	VariantIdents bool   // vary e-mail casing and padding on repeat gifts
}

// Stats summarizes a generated ledger.
type Stats struct {
	Records   int
	Donors    int
	Raised    decimal.Decimal // exact sum of amounts as written
	StartTime time.Time
	Duration  time.Duration
}
