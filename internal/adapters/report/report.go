// Package report renders raffle results for operators.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/okian/winnerpicker/internal/domain/model"
	"github.com/okian/winnerpicker/internal/domain/types"
)

const bannerRule = "################"

// WriteDiagnostics prints one line per donor followed by the grand total.
func WriteDiagnostics(w io.Writer, standings []model.Standing, totalRaised int64) error {
	for _, s := range standings {
		if _, err := fmt.Fprintf(w, "donor=%s, email=%s, dollarAmount=%d, entriesAmount=%d\n",
			s.Donor.DisplayName, s.Donor.Identity, s.Total, s.Entries); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total raised: %d\n", totalRaised)
	return err
}

// WriteWinner prints the winner banner. The display name is announced when
// present, otherwise the e-mail.
func WriteWinner(w io.Writer, winner model.Donor) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(bannerRule + "\n" + bannerRule + "\n")
	b.WriteString("THE WINNER IS: " + winner.Label() + "\n")
	b.WriteString(bannerRule + "\n" + bannerRule + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON prints r as indented JSON.
func WriteJSON(w io.Writer, r types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
