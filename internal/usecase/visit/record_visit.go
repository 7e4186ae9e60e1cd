package visit

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	domain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/metrics"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

const maxNotesLength = 500

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RecordVisitInput struct {
	Caller authz.Identity

	CustomerID uint
	VisitDate  string
	Lines      []domain.LineInput
	Notes      string

	PaymentMethod string
	MomoReference string
}

type RecordVisitOutput struct {
	ID    uint    `json:"id"`
	Total float64 `json:"total"`
}

// ======================================================
// USE CASE
// ======================================================

type RecordVisit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRecordVisit(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RecordVisit {
	return &RecordVisit{
		repo:  repo,
		audit: audit,
	}
}

var recordVisitAccess = authz.OnlyBarbers("Only barbers can record visits.")

// ======================================================
// EXECUTE
// ======================================================

func (uc *RecordVisit) Execute(
	ctx context.Context,
	in RecordVisitInput,
) (*RecordVisitOutput, error) {

	// --------------------------------------------------
	// 1. Access
	// --------------------------------------------------
	if err := authz.Check(in.Caller, recordVisitAccess); err != nil {
		return nil, err
	}
	barberID, ok := in.Caller.OwnBarber()
	if !ok {
		return nil, httperr.Validation("barber_required", "Your account is not linked to a barber.")
	}

	// --------------------------------------------------
	// 2. Shape of the request
	// --------------------------------------------------
	if in.CustomerID == 0 {
		return nil, httperr.Validation("customer_required", "Customer is required.")
	}
	if strings.TrimSpace(in.VisitDate) == "" {
		return nil, httperr.Validation("date_required", "Visit date is required.")
	}
	if _, err := validators.ParseDate(in.VisitDate); err != nil {
		return nil, err
	}

	lines, err := domain.ValidateLines(in.Lines)
	if err != nil {
		return nil, err
	}

	method, reference, err := domain.ResolvePayment(in.PaymentMethod, in.MomoReference)
	if err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLength {
		return nil, httperr.Validation("notes_too_long", "Notes must be at most 500 characters.")
	}

	// --------------------------------------------------
	// 3. Referenced rows
	// --------------------------------------------------
	if ok, err := uc.repo.BarberExists(ctx, barberID); err != nil {
		return nil, err
	} else if !ok {
		return nil, httperr.Validation("barber_required", "Your account is not linked to a barber.")
	}

	if ok, err := uc.repo.CustomerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, httperr.Validation("customer_not_found", "Customer does not exist.")
	}

	missing, err := uc.repo.MissingServices(ctx, domain.ServiceIDs(lines))
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, httperr.Validation("unknown_service", "One or more services do not exist.")
	}

	// --------------------------------------------------
	// 4. Persist visit + lines atomically
	// --------------------------------------------------
	totalCents := domain.TotalCents(lines)
	v := &models.Visit{
		BarberID:      barberID,
		CustomerID:    in.CustomerID,
		VisitDate:     in.VisitDate,
		TotalAmount:   domain.FromCents(totalCents),
		Notes:         notes,
		PaymentMethod: string(method),
		MomoReference: reference,
		Services:      domain.ToModels(lines),
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	metrics.VisitsRecorded.WithLabelValues(string(method)).Inc()
	metrics.SalesAmount.WithLabelValues(string(method)).Add(v.TotalAmount)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "visit_recorded",
		Entity:   "visit",
		EntityID: &v.ID,
		Metadata: map[string]any{
			"total":          v.TotalAmount,
			"payment_method": v.PaymentMethod,
			"lines":          len(lines),
		},
	})

	return &RecordVisitOutput{ID: v.ID, Total: v.TotalAmount}, nil
}
