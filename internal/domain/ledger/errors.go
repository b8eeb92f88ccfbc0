package ledger

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidAmount  = errors.New("invalid donation amount")
	ErrNegativeAmount = errors.New("negative donation amount")
	ErrAmountTooLarge = errors.New("donation amount exceeds maximum")
	ErrTotalOverflow  = errors.New("ledger total would overflow")
)

var errAmountPrecision = errors.New("too many fractional digits")

// InvalidAmountError reports a donation amount that could not be used.
// Raw carries the offending text so an operator can correct the export.
type InvalidAmountError struct {
	Raw string
	Err error
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidAmount, e.Raw, e.Err)
}

func (e *InvalidAmountError) Unwrap() error { return e.Err }

// Is reports ErrInvalidAmount as the kind of this error.
func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }
