// Package identity normalizes and validates donor identities.
package identity

import (
	"errors"
	"net/mail"
	"strings"
)

// Normalize trims and lower-cases a raw e-mail and verifies it parses as a
// single address with a non-empty local part and domain.
// Normalizing an already normalized identity returns it unchanged.
func Normalize(raw string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))

	addr, err := mail.ParseAddress(id)
	if err != nil {
		return "", &InvalidIdentityError{Raw: raw, Err: err}
	}
	if addr.Name != "" || addr.Address != id {
		return "", &InvalidIdentityError{Raw: raw, Err: errNotBareAddress}
	}

	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || at == len(addr.Address)-1 {
		return "", &InvalidIdentityError{Raw: raw, Err: errors.New("empty local part or domain")}
	}
	return id, nil
}
