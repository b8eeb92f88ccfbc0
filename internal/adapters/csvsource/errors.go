package csvsource

import "errors"

// Sentinel kinds for ledger source errors.
var (
	ErrMalformedRow = errors.New("malformed ledger row")
	ErrReadLedger   = errors.New("read ledger failed")
)
