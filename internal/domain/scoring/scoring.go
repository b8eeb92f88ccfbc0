// Package scoring converts donation totals into raffle entries.
package scoring

// Default tier configuration constants.
const (
	defaultThreshold = 50
	defaultDivisor   = 2
)

// Option applies a configuration option to the TieredAllocator.
type Option func(*TieredAllocator)

// WithThreshold sets the total up to which every dollar is one entry.
func WithThreshold(threshold int64) Option {
	return func(a *TieredAllocator) {
		if threshold > 0 {
			a.threshold = threshold
		}
	}
}

// WithDivisor sets how many dollars above the threshold buy one entry.
func WithDivisor(divisor int64) Option {
	return func(a *TieredAllocator) {
		if divisor > 0 {
			a.divisor = divisor
		}
	}
}

// Allocator maps a donor's whole-dollar total to a number of entries.
type Allocator interface {
	// Entries returns a non-negative entry count for total.
	Entries(total int64) int64
}

// TieredAllocator credits one entry per dollar up to the threshold and one
// entry per divisor dollars above it, rounded down.
type TieredAllocator struct {
	threshold int64
	divisor   int64
}

// NewTieredAllocator creates an allocator with the default 50 / 2 tiers.
func NewTieredAllocator(opts ...Option) *TieredAllocator {
	a := &TieredAllocator{
		threshold: defaultThreshold,
		divisor:   defaultDivisor,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Entries implements Allocator.
func (a *TieredAllocator) Entries(total int64) int64 {
	switch {
	case total <= 0:
		return 0
	case total <= a.threshold:
		return total
	default:
		return (total-a.threshold)/a.divisor + a.threshold
	}
}

// Threshold returns the configured linear tier limit.
func (a *TieredAllocator) Threshold() int64 { return a.threshold }

// Divisor returns the configured dollars-per-entry above the threshold.
func (a *TieredAllocator) Divisor() int64 { return a.divisor }

// Allocate applies a to every total independently.
func Allocate(a Allocator, totals map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(totals))
	for id, total := range totals {
		out[id] = a.Entries(total)
	}
	return out
}
