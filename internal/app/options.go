package service

import (
	"io"

	"github.com/google/uuid"
	"github.com/okian/winnerpicker/internal/domain/scoring"
	"github.com/okian/winnerpicker/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAllocator sets the entry allocator.
func WithAllocator(a scoring.Allocator) Option {
	return func(s *Service) {
		if a != nil {
			s.allocator = a
		}
	}
}

// WithDrawer sets the winner drawer.
func WithDrawer(d Drawer) Option {
	return func(s *Service) {
		if d != nil {
			s.drawer = d
		}
	}
}

// WithSelectWinner toggles the draw. When false Run only aggregates.
func WithSelectWinner(selectWinner bool) Option {
	return func(s *Service) {
		s.selectWinner = selectWinner
	}
}

// WithDiagnostics prints per-donor totals and entries to w before drawing.
// A nil writer disables diagnostics.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Service) {
		s.diagnostics = w
	}
}

// WithIDGenerator sets how draw IDs are minted.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}
