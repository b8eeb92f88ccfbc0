package csvsource

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithColumns sets the zero-based donation, e-mail and name columns.
// Negative indexes are ignored.
func WithColumns(donation, email, name int) Option {
	return func(s *Source) {
		if donation >= 0 && email >= 0 && name >= 0 {
			s.donationCol, s.emailCol, s.nameCol = donation, email, name
		}
	}
}

// WithDelimiter sets the field separator.
func WithDelimiter(r rune) Option {
	return func(s *Source) {
		if r != 0 {
			s.comma = r
		}
	}
}

// WithSkipHeader drops the first row.
func WithSkipHeader(skip bool) Option {
	return func(s *Source) {
		s.skipHeader = skip
	}
}
