package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-sales/internal/authz"
	report "github.com/BruksfildServices01/barber-sales/internal/domain/report"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SummaryInput struct {
	Caller authz.Identity
	From   string
	To     string
}

type SummaryOutput struct {
	From      string                `json:"from,omitempty"`
	To        string                `json:"to,omitempty"`
	Overall   report.Overall        `json:"overall"`
	ByBarber  []report.BarberTotal  `json:"by_barber"`
	ByService []report.ServiceTotal `json:"by_service,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Summary struct {
	repo report.Repository
}

func NewSummary(repo report.Repository) *Summary {
	return &Summary{repo: repo}
}

// Execute aggregates visits in the inclusive range. Barbers only see their
// own figures and never the per-service breakdown.
func (uc *Summary) Execute(ctx context.Context, in SummaryInput) (*SummaryOutput, error) {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return nil, err
	}
	if err := validators.DateRange(in.From, in.To); err != nil {
		return nil, err
	}

	out := &SummaryOutput{
		From:     in.From,
		To:       in.To,
		ByBarber: []report.BarberTotal{},
	}

	filter := report.Filter{From: in.From, To: in.To}
	if !in.Caller.IsAdmin() {
		barberID, ok := in.Caller.OwnBarber()
		if !ok {
			return out, nil
		}
		filter.BarberID = &barberID
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overall, err := uc.repo.Overall(gctx, filter)
		if err != nil {
			return err
		}
		out.Overall = overall
		return nil
	})

	g.Go(func() error {
		rows, err := uc.repo.ByBarber(gctx, filter)
		if err != nil {
			return err
		}
		if rows != nil {
			out.ByBarber = rows
		}
		return nil
	})

	if in.Caller.IsAdmin() {
		g.Go(func() error {
			rows, err := uc.repo.ByService(gctx, filter)
			if err != nil {
				return err
			}
			out.ByService = rows
			if out.ByService == nil {
				out.ByService = []report.ServiceTotal{}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
