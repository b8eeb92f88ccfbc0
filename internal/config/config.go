// Package config defines raffle configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and RAFFLE_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Output formats for the raffle report.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// LedgerFile is the donation export to read.
	LedgerFile string `koanf:"ledger_file"`

	// Zero-based column indexes within each ledger row.
	DonationColumn int `koanf:"donation_column"`
	EmailColumn    int `koanf:"email_column"`
	NameColumn     int `koanf:"name_column"`

	// Delimiter is the single-character field separator of the ledger.
	Delimiter string `koanf:"delimiter"`

	// SkipHeader drops the first row of the ledger.
	SkipHeader bool `koanf:"skip_header"`

	// SelectWinner runs the draw; when false only aggregates are computed.
	SelectWinner bool `koanf:"select_winner"`

	// PrintDiagnostics prints per-donor totals and entries before drawing.
	PrintDiagnostics bool `koanf:"print_diagnostics"`

	// OutputFormat is text or json.
	OutputFormat string `koanf:"output_format"`

	// EntryThreshold and EntryDivisor shape the tiered entry curve.
	EntryThreshold int64 `koanf:"entry_threshold"`
	EntryDivisor   int64 `koanf:"entry_divisor"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults matching the Tiltify export layout.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		LedgerFile:       "tiltify.csv",
		DonationColumn:   1,
		EmailColumn:      3,
		NameColumn:       4,
		Delimiter:        ",",
		SkipHeader:       false,
		SelectWinner:     true,
		PrintDiagnostics: false,
		OutputFormat:     OutputText,
		EntryThreshold:   50,
		EntryDivisor:     2,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LedgerFile) == "" {
		return fmt.Errorf("%w: ledger_file must not be empty", ErrInvalidConfig)
	}

	cols := map[string]int{
		"donation_column": c.DonationColumn,
		"email_column":    c.EmailColumn,
		"name_column":     c.NameColumn,
	}
	seen := make(map[int]string, len(cols))
	for _, key := range []string{"donation_column", "email_column", "name_column"} {
		idx := cols[key]
		if idx < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, key)
		}
		if other, dup := seen[idx]; dup {
			return fmt.Errorf("%w: %s and %s both use column %d", ErrInvalidConfig, other, key, idx)
		}
		seen[idx] = key
	}

	if !validDelimiter(c.Delimiter) {
		return fmt.Errorf("%w: delimiter must be a single valid character other than quote, CR or LF", ErrInvalidConfig)
	}

	switch c.OutputFormat {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: unknown output_format %q", ErrInvalidConfig, c.OutputFormat)
	}

	if c.EntryThreshold <= 0 {
		return fmt.Errorf("%w: entry_threshold must be positive", ErrInvalidConfig)
	}
	if c.EntryDivisor <= 0 {
		return fmt.Errorf("%w: entry_divisor must be positive", ErrInvalidConfig)
	}
	return nil
}

// validDelimiter mirrors the separators encoding/csv accepts.
func validDelimiter(d string) bool {
	if utf8.RuneCountInString(d) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(d)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return false
	}
	return utf8.ValidRune(r)
}

// DelimiterRune returns Delimiter as a rune. Call after Validate.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
