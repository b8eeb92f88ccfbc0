// Package draw selects a raffle winner with probability proportional to
// entry counts.
package draw

import (
	"context"
	"fmt"
	"math"
)

// Entrant is a donor identity and the number of entries it holds.
type Entrant struct {
	Identity string
	Entries  int64
}

// Option applies a configuration option to the Drawer.
type Option func(*Drawer)

// WithSource sets the randomness source.
func WithSource(src Source) Option {
	return func(d *Drawer) {
		if src != nil {
			d.src = src
		}
	}
}

// WithSeed makes the drawer reproducible.
func WithSeed(seed int64) Option {
	return func(d *Drawer) {
		d.src = SeededSource(seed)
	}
}

// Drawer performs a uniform draw over the expanded entry multiset.
type Drawer struct {
	src Source
}

// New creates a Drawer that uses crypto/rand unless a source is supplied.
func New(opts ...Option) *Drawer {
	d := &Drawer{src: CryptoSource()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Multiset expands entrants into a slice holding each identity once per
// entry, in input order. Entrants with zero or negative entries are omitted.
// Draw samples the same pool without materializing it; Multiset allocates one
// slot per entry and is only suitable for small pools.
func Multiset(entrants []Entrant) []string {
	var n int64
	for _, e := range entrants {
		if e.Entries > 0 {
			n += e.Entries
		}
	}

	pool := make([]string, 0, n)
	for _, e := range entrants {
		for i := int64(0); i < e.Entries; i++ {
			pool = append(pool, e.Identity)
		}
	}
	return pool
}

// Draw picks one identity. Each entrant wins with probability
// Entries / sum(Entries). The drawn slot is located by walking cumulative
// entry counts, so the winner for slot k is Multiset(entrants)[k].
func (d *Drawer) Draw(ctx context.Context, entrants []Entrant) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var total int64
	for _, e := range entrants {
		if e.Entries <= 0 {
			continue
		}
		if e.Entries > math.MaxInt64-total {
			return "", ErrEntryOverflow
		}
		total += e.Entries
	}
	if total == 0 {
		return "", ErrNoEligibleEntrants
	}

	slot := d.src.Int63n(total)
	if slot < 0 || slot >= total {
		return "", fmt.Errorf("source returned slot %d outside [0, %d)", slot, total)
	}
	for _, e := range entrants {
		if e.Entries <= 0 {
			continue
		}
		if slot < e.Entries {
			return e.Identity, nil
		}
		slot -= e.Entries
	}
	return "", fmt.Errorf("slot not covered by %d entries", total)
}
