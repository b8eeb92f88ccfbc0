// Package model contains domain models passed between layers.
package model

import "strings"

// DonationRecord is one row of a donation ledger export.
// Fields hold the raw text as it appeared in the source.
type DonationRecord struct {
	Row      int    // 1-based source row, 0 when unknown
	Amount   string // decimal currency value, e.g. "25.00"
	Identity string // donor e-mail address
	Name     string // donor display name
}

// Donor is a unique raffle participant keyed by normalized e-mail.
type Donor struct {
	Identity    string // normalized e-mail, the dedupe key
	DisplayName string // name from the first record seen for Identity
}

// Label returns the name to announce for the donor, falling back to the
// identity when no usable display name was supplied.
func (d Donor) Label() string {
	if strings.TrimSpace(d.DisplayName) == "" {
		return d.Identity
	}
	return d.DisplayName
}

// Standing captures a donor's aggregated position in the raffle.
type Standing struct {
	Donor   Donor
	Total   int64 // whole-dollar donation total
	Entries int64 // lottery entries derived from Total
}
