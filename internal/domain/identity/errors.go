package identity

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentity is the sentinel kind for malformed donor identities.
var ErrInvalidIdentity = errors.New("invalid donor identity")

var errNotBareAddress = errors.New("expected a bare address without display name")

// InvalidIdentityError reports a donor identity that could not be parsed as
// a single well-formed e-mail address.
type InvalidIdentityError struct {
	Raw string // identity text as supplied
	Err error  // underlying parse failure
}

func (e *InvalidIdentityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q", ErrInvalidIdentity, e.Raw)
	}
	return fmt.Sprintf("%s %q: %v", ErrInvalidIdentity, e.Raw, e.Err)
}

func (e *InvalidIdentityError) Unwrap() error { return e.Err }

// Is reports ErrInvalidIdentity as the kind of this error.
func (e *InvalidIdentityError) Is(target error) bool { return target == ErrInvalidIdentity }
