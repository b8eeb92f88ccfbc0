// Package csvsource reads donation ledger exports into donation records.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/winnerpicker/internal/domain/model"
)

const utf8BOM = "\ufeff"

// Source turns delimited rows into records. It only checks row structure;
// field contents are validated by the ledger.
type Source struct {
	donationCol int
	emailCol    int
	nameCol     int
	comma       rune
	skipHeader  bool
}

// New creates a Source for the Tiltify export layout unless overridden.
func New(opts ...Option) *Source {
	s := &Source{
		donationCol: 1,
		emailCol:    3,
		nameCol:     4,
		comma:       ',',
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadFile opens path and reads every record from it.
func (s *Source) ReadFile(ctx context.Context, path string) ([]model.DonationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadLedger, err)
	}
	defer func() { _ = f.Close() }()

	return s.Read(ctx, f)
}

// Read parses every row of r. Blank lines are skipped; a row too short to
// hold the configured columns fails the whole read.
func (s *Source) Read(ctx context.Context, r io.Reader) ([]model.DonationRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1

	width := max(s.donationCol, s.emailCol, s.nameCol) + 1

	var (
		records []model.DonationRecord
		first   = true
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrReadLedger, err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
			if s.skipHeader {
				continue
			}
		}

		if len(fields) < width {
			return nil, fmt.Errorf("%w: line %d has %d fields, need at least %d",
				ErrMalformedRow, line, len(fields), width)
		}

		records = append(records, model.DonationRecord{
			Row:      line,
			Amount:   fields[s.donationCol],
			Identity: fields[s.emailCol],
			Name:     fields[s.nameCol],
		})
	}
	return records, nil
}
