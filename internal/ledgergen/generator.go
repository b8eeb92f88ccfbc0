// Package ledgergen writes synthetic donation ledgers in the Tiltify export
// layout for exercising the raffle end to end.
package ledgergen

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Header is the column layout written by Generate; the raffle reads
// amount, e-mail and name from columns 1, 3 and 4.
var Header = []string{"donation_id", "amount", "completed_at", "email", "name", "comment"}

// Donation tiers in cents: small, near the entry threshold, large, whale.
const (
	tierSmall = iota
	tierThreshold
	tierLarge
	tierWhale
	tierCount
)

var tierCents = [tierCount][2]int64{
	tierSmall:     {100, 2_000},
	tierThreshold: {4_500, 6_000},
	tierLarge:     {6_000, 25_000},
	tierWhale:     {25_000, 200_000},
}

var comments = []string{"", "", "Go team!", "For the kids", "gg", "Happy to help"}

// Generate writes cfg.Donors donors with 1..cfg.MaxGifts donations each.
func Generate(ctx context.Context, cfg *Config, w io.Writer) (*Stats, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data only
	maxGifts := max(cfg.MaxGifts, 1)

	stats := &Stats{StartTime: time.Now(), Raised: decimal.Zero}
	cw := csv.NewWriter(w)
	if cfg.Header {
		if err := cw.Write(Header); err != nil {
			return nil, err
		}
	}

	completed := time.Date(2024, 11, 2, 18, 0, 0, 0, time.UTC)
	for i := 0; i < cfg.Donors; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during ledger generation: %w", err)
		}

		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		email := fmt.Sprintf("donor-%s@example.org", id.String()[:8])
		name := donorName(rng, i)
		tier := rng.Intn(tierCount)

		gifts := 1 + rng.Intn(maxGifts)
		for g := 0; g < gifts; g++ {
			lo, hi := tierCents[tier][0], tierCents[tier][1]
			amount := decimal.New(lo+rng.Int63n(hi-lo+1), -2)

			ident := email
			if cfg.VariantIdents && g > 0 {
				ident = variant(rng, email)
			}
			donationID, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				return nil, err
			}
			completed = completed.Add(time.Duration(1+rng.Intn(600)) * time.Second)

			row := []string{
				donationID.String(),
				amount.StringFixed(2),
				completed.Format(time.RFC3339),
				ident,
				name,
				comments[rng.Intn(len(comments))],
			}
			if err := cw.Write(row); err != nil {
				return nil, err
			}
			stats.Records++
			stats.Raised = stats.Raised.Add(amount)
		}
		stats.Donors++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	stats.Duration = time.Since(stats.StartTime)
	return stats, nil
}

// donorName leaves roughly one donor in eight anonymous.
func donorName(rng *rand.Rand, i int) string {
	if rng.Intn(8) == 0 {
		return ""
	}
	return fmt.Sprintf("Donor %d", i+1)
}

// variant returns email with random casing and surrounding whitespace.
func variant(rng *rand.Rand, email string) string {
	var b strings.Builder
	for _, r := range email {
		if rng.Intn(2) == 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	pad := []string{"", " ", "  ", "\t"}
	return pad[rng.Intn(len(pad))] + b.String() + pad[rng.Intn(len(pad))]
}
