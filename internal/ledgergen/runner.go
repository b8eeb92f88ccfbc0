package ledgergen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/winnerpicker/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run generates a ledger into cfg.OutputFile and logs a summary.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg.Donors <= 0 {
		return nil, fmt.Errorf("donors must be positive, got %d", cfg.Donors)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "generated_ledger_" + time.Now().Format("20060102_150405") + ".csv"
	}
	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger file: %w", err)
	}

	stats, genErr := Generate(ctx, cfg, f)
	if err := f.Close(); err != nil && genErr == nil {
		genErr = fmt.Errorf("failed to close ledger file: %w", err)
	}
	if genErr != nil {
		return nil, genErr
	}

	logger.Get().Info(ctx, "ledger generated",
		logger.String("file", cfg.OutputFile),
		logger.Int("donors", stats.Donors),
		logger.Int("records", stats.Records),
		logger.String("raised", stats.Raised.StringFixed(2)),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}
