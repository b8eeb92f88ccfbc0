// Package ledger folds donation records into per-donor whole-dollar totals.
package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/winnerpicker/internal/domain/identity"
	"github.com/okian/winnerpicker/internal/domain/model"
)

// Ledger deduplicates donors by normalized identity and accumulates their
// totals. Each record is rounded on its own before it is added, so rounding
// differences can build up across a donor's records.
//
// A Ledger is not safe for concurrent use; shard and Merge instead.
type Ledger struct {
	donors map[string]model.Donor
	totals map[string]int64
	order  []string // identities in first-seen order
	raised int64    // sum of totals; bounds every per-donor total
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		donors: make(map[string]model.Donor),
		totals: make(map[string]int64),
	}
}

// Add validates a record and adds its rounded amount to the donor's total.
// A record that fails validation leaves the ledger unchanged.
func (l *Ledger) Add(rec model.DonationRecord) error {
	id, err := identity.Normalize(rec.Identity)
	if err != nil {
		return recordError(rec, err)
	}
	amount, err := ParseAmount(rec.Amount)
	if err != nil {
		return recordError(rec, err)
	}
	if amount > math.MaxInt64-l.raised {
		return recordError(rec, &InvalidAmountError{Raw: rec.Amount, Err: ErrTotalOverflow})
	}

	if _, ok := l.donors[id]; !ok {
		l.donors[id] = model.Donor{Identity: id, DisplayName: strings.TrimSpace(rec.Name)}
		l.order = append(l.order, id)
	}
	l.totals[id] += amount
	l.raised += amount
	return nil
}

// AddAll adds records in order and stops at the first invalid one.
func (l *Ledger) AddAll(recs []model.DonationRecord) error {
	for _, rec := range recs {
		if err := l.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// Merge sums other's totals into l. Donors already known to l keep their
// display name; new donors are appended in other's first-seen order.
// If the combined total would overflow, l is left unchanged.
func (l *Ledger) Merge(other *Ledger) error {
	if other.raised > math.MaxInt64-l.raised {
		return fmt.Errorf("merge: %w", ErrTotalOverflow)
	}
	for _, id := range other.order {
		if _, ok := l.donors[id]; !ok {
			l.donors[id] = other.donors[id]
			l.order = append(l.order, id)
		}
		l.totals[id] += other.totals[id]
	}
	l.raised += other.raised
	return nil
}

// Len returns the number of distinct donors.
func (l *Ledger) Len() int { return len(l.order) }

// Donor looks up a donor by normalized identity.
func (l *Ledger) Donor(id string) (model.Donor, bool) {
	d, ok := l.donors[id]
	return d, ok
}

// Donors returns donors in first-seen order.
func (l *Ledger) Donors() []model.Donor {
	out := make([]model.Donor, len(l.order))
	for i, id := range l.order {
		out[i] = l.donors[id]
	}
	return out
}

// Total returns the accumulated whole-dollar total for a donor.
func (l *Ledger) Total(id string) int64 { return l.totals[id] }

// Totals returns a copy of the identity -> total mapping.
func (l *Ledger) Totals() map[string]int64 {
	out := make(map[string]int64, len(l.totals))
	for id, t := range l.totals {
		out[id] = t
	}
	return out
}

// TotalRaised sums every donor's total.
func (l *Ledger) TotalRaised() int64 { return l.raised }

func recordError(rec model.DonationRecord, err error) error {
	if rec.Row > 0 {
		return fmt.Errorf("record at row %d: %w", rec.Row, err)
	}
	return fmt.Errorf("record: %w", err)
}
