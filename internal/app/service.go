// Package service runs the raffle pipeline: ledger aggregation, entry
// allocation and the weighted draw.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/okian/winnerpicker/internal/adapters/report"
	"github.com/okian/winnerpicker/internal/domain/draw"
	"github.com/okian/winnerpicker/internal/domain/identity"
	"github.com/okian/winnerpicker/internal/domain/ledger"
	"github.com/okian/winnerpicker/internal/domain/model"
	"github.com/okian/winnerpicker/internal/domain/scoring"
	"github.com/okian/winnerpicker/internal/domain/types"
	"github.com/okian/winnerpicker/pkg/logger"
	"github.com/okian/winnerpicker/pkg/metrics"
)

// Drawer selects one identity among weighted entrants.
type Drawer interface {
	Draw(ctx context.Context, entrants []draw.Entrant) (string, error)
}

// Result is the outcome of one run.
type Result struct {
	DrawID       uuid.UUID
	Standings    []model.Standing // first-seen donor order
	TotalRaised  int64
	TotalEntries int64
	Winner       *model.Donor // nil when the draw was skipped
}

// Report converts r into its JSON shape. Standings are included only when
// withStandings is set.
func (r *Result) Report(withStandings bool) types.Report {
	out := types.Report{
		DrawID:       r.DrawID.String(),
		Donors:       len(r.Standings),
		TotalRaised:  r.TotalRaised,
		TotalEntries: r.TotalEntries,
	}
	if withStandings {
		out.Standings = make([]types.Standing, len(r.Standings))
		for i, s := range r.Standings {
			out.Standings[i] = types.Standing{
				Identity: s.Donor.Identity,
				Name:     s.Donor.DisplayName,
				Total:    s.Total,
				Entries:  s.Entries,
			}
		}
	}
	if r.Winner != nil {
		out.Winner = &types.Winner{
			Identity: r.Winner.Identity,
			Name:     r.Winner.DisplayName,
			Label:    r.Winner.Label(),
		}
	}
	return out
}

// Service wires the raffle components together. A Service holds no state
// between runs.
type Service struct {
	logger       logger.Logger
	allocator    scoring.Allocator
	drawer       Drawer
	selectWinner bool
	diagnostics  io.Writer
	newID        func() uuid.UUID
}

// New constructs a Service with the default tiers and a crypto/rand drawer.
func New(opts ...Option) *Service {
	s := &Service{
		allocator:    scoring.NewTieredAllocator(),
		drawer:       draw.New(),
		selectWinner: true,
		newID:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run folds records into per-donor totals, allocates entries and, unless
// disabled, draws a winner. Any invalid record aborts the run before a
// draw happens.
func (s *Service) Run(ctx context.Context, records []model.DonationRecord) (*Result, error) {
	start := time.Now()
	log := s.logger
	if log == nil {
		log = logger.Get()
	}

	res := &Result{DrawID: s.newID()}
	ctx = logger.WithFields(ctx, logger.String("drawID", res.DrawID.String()))
	log.Info(ctx, "raffle run started",
		logger.Int("records", len(records)),
		logger.Bool("selectWinner", s.selectWinner),
	)

	l := ledger.New()
	for _, rec := range records {
		if err := l.Add(rec); err != nil {
			return nil, s.fail(ctx, log, err)
		}
		metrics.RecordRecordProcessed()
	}
	res.TotalRaised = l.TotalRaised()
	metrics.UpdateLedger(l.Len(), res.TotalRaised)

	donors := l.Donors()
	res.Standings = make([]model.Standing, len(donors))
	entrants := make([]draw.Entrant, len(donors))
	eligible := 0
	for i, d := range donors {
		total := l.Total(d.Identity)
		entries := s.allocator.Entries(total)
		res.Standings[i] = model.Standing{Donor: d, Total: total, Entries: entries}
		entrants[i] = draw.Entrant{Identity: d.Identity, Entries: entries}
		res.TotalEntries += entries
		if entries > 0 {
			eligible++
		}
		metrics.ObserveDonorEntries(entries)
		log.Debug(ctx, "donor allocated",
			logger.String("identity", d.Identity),
			logger.Int64("total", total),
			logger.Int64("entries", entries),
		)
	}
	metrics.UpdateEntries(res.TotalEntries, eligible)

	log.Info(ctx, "ledger aggregated",
		logger.Int("donors", len(donors)),
		logger.Int("eligible", eligible),
		logger.Int64("totalRaised", res.TotalRaised),
		logger.Int64("totalEntries", res.TotalEntries),
	)

	if s.diagnostics != nil {
		if err := report.WriteDiagnostics(s.diagnostics, res.Standings, res.TotalRaised); err != nil {
			return nil, fmt.Errorf("write diagnostics: %w", err)
		}
	}

	if !s.selectWinner {
		log.Info(ctx, "winner selection disabled; skipping draw")
		metrics.RecordRunDuration(elapsedMS(start))
		return res, nil
	}

	id, err := s.drawer.Draw(ctx, entrants)
	if err != nil {
		return nil, s.fail(ctx, log, err)
	}
	winner, ok := l.Donor(id)
	if !ok {
		return nil, s.fail(ctx, log, fmt.Errorf("drawer returned unknown identity %q", id))
	}
	res.Winner = &winner
	metrics.RecordDraw()
	metrics.RecordRunDuration(elapsedMS(start))

	log.Info(ctx, "winner drawn",
		logger.String("identity", winner.Identity),
		logger.Int64("entries", entriesOf(res.Standings, winner.Identity)),
		logger.Int64("totalEntries", res.TotalEntries),
	)
	return res, nil
}

func (s *Service) fail(ctx context.Context, log logger.Logger, err error) error {
	metrics.RecordValidationFailure(FailureKind(err))
	log.Error(ctx, "raffle run aborted",
		logger.String("kind", FailureKind(err)),
		logger.Error(err),
	)
	return err
}

// FailureKind classifies err into a metrics failure kind.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, identity.ErrInvalidIdentity):
		return metrics.KindIdentity
	case errors.Is(err, ledger.ErrInvalidAmount):
		return metrics.KindAmount
	case errors.Is(err, draw.ErrNoEligibleEntrants):
		return metrics.KindNoEntrants
	default:
		return metrics.KindUnknown
	}
}

func entriesOf(standings []model.Standing, id string) int64 {
	for _, s := range standings {
		if s.Donor.Identity == id {
			return s.Entries
		}
	}
	return 0
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
