package draw

import "errors"

var (
	// ErrNoEligibleEntrants is returned when no entrant holds any entries.
	ErrNoEligibleEntrants = errors.New("no eligible entrants: total entry count is zero")

	// ErrEntryOverflow is returned when the summed entry count exceeds int64.
	ErrEntryOverflow = errors.New("total entry count overflows int64")
)
