package visit

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/authz"
	domain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/dto"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

type ListVisitsInput struct {
	Caller   authz.Identity
	BarberID *uint
	From     string
	To       string
}

type ListVisits struct {
	repo domain.Repository
}

func NewListVisits(repo domain.Repository) *ListVisits {
	return &ListVisits{repo: repo}
}

func (uc *ListVisits) Execute(ctx context.Context, in ListVisitsInput) ([]dto.VisitListDTO, error) {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return nil, err
	}

	visits, err := loadVisits(ctx, uc.repo, in, false)
	if err != nil {
		return nil, err
	}

	out := make([]dto.VisitListDTO, 0, len(visits))
	for _, v := range visits {
		out = append(out, dto.FromVisit(v))
	}
	return out, nil
}

// scopedFilter applies the caller's visibility: barbers only ever see their
// own barber, whatever filter they asked for. ok is false when the caller can
// see nothing.
func scopedFilter(in ListVisitsInput) (domain.Filter, bool) {
	f := domain.Filter{From: in.From, To: in.To, BarberID: in.BarberID}
	if in.Caller.IsAdmin() {
		return f, true
	}
	own, ok := in.Caller.OwnBarber()
	if !ok {
		return f, false
	}
	f.BarberID = &own
	return f, true
}

func loadVisits(ctx context.Context, repo domain.Repository, in ListVisitsInput, unbounded bool) ([]models.Visit, error) {
	if err := validators.DateRange(in.From, in.To); err != nil {
		return nil, err
	}
	f, ok := scopedFilter(in)
	if !ok {
		return nil, nil
	}
	f.Unbounded = unbounded
	return repo.List(ctx, f)
}
