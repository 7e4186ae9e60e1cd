package passwordreset

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	passwordreset "github.com/BruksfildServices01/barber-sales/internal/domain/passwordreset"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/metrics"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

var errPendingExists = httperr.Conflict(
	"pending_request_exists",
	"You already have a pending password reset request.",
)

// ======================================================
// REQUEST (barber)
// ======================================================

type RequestReset struct {
	repo  passwordreset.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRequestReset(repo passwordreset.Repository, audit *audit.Dispatcher) *RequestReset {
	return &RequestReset{repo: repo, audit: audit, now: time.Now}
}

var requestAccess = authz.OnlyBarbers("Only barbers can request a password reset.")

func (uc *RequestReset) Execute(ctx context.Context, caller authz.Identity) (*models.PasswordResetRequest, error) {
	if err := authz.Check(caller, requestAccess); err != nil {
		return nil, err
	}

	pending, err := uc.repo.HasPending(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errPendingExists
	}

	req := passwordreset.New(caller.UserID, uc.now().UTC())
	err = uc.repo.Create(ctx, req)
	if errors.Is(err, domain.ErrDuplicate) {
		// lost a race with a concurrent request from the same user
		return nil, errPendingExists
	}
	if err != nil {
		return nil, err
	}

	metrics.PasswordResets.WithLabelValues("requested").Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &caller.UserID,
		Action:   "password_reset_requested",
		Entity:   "password_reset_request",
		EntityID: &req.ID,
	})
	return req, nil
}

// ======================================================
// LIST PENDING (admin)
// ======================================================

type ListPending struct {
	repo passwordreset.Repository
}

func NewListPending(repo passwordreset.Repository) *ListPending {
	return &ListPending{repo: repo}
}

func (uc *ListPending) Execute(ctx context.Context, caller authz.Identity) ([]models.PasswordResetRequest, error) {
	if err := authz.Check(caller, authz.Admin); err != nil {
		return nil, err
	}
	return uc.repo.ListPending(ctx)
}

// ======================================================
// REVIEW (admin)
// ======================================================

type ReviewInput struct {
	Caller    authz.Identity
	RequestID uint
}

// Approve sets the requesting user's password to the configured default and
// flags it for change, in the same transaction as the status transition.
type Approve struct {
	repo            passwordreset.Repository
	hasher          *auth.Hasher
	defaultPassword string
	audit           *audit.Dispatcher
	now             func() time.Time
}

func NewApprove(
	repo passwordreset.Repository,
	hasher *auth.Hasher,
	defaultPassword string,
	audit *audit.Dispatcher,
) *Approve {
	return &Approve{
		repo:            repo,
		hasher:          hasher,
		defaultPassword: defaultPassword,
		audit:           audit,
		now:             time.Now,
	}
}

func (uc *Approve) Execute(ctx context.Context, in ReviewInput) (*models.PasswordResetRequest, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(uc.defaultPassword)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	req, err := uc.repo.Review(ctx, in.RequestID, func(r *models.PasswordResetRequest) error {
		return passwordreset.Approve(r, in.Caller.UserID, now)
	}, hash)
	if err != nil {
		return nil, reviewError(err)
	}

	metrics.PasswordResets.WithLabelValues("approved").Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "password_reset_approved",
		Entity:   "password_reset_request",
		EntityID: &req.ID,
		Metadata: map[string]uint{"user_id": req.UserID},
	})
	return req, nil
}

type Reject struct {
	repo  passwordreset.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewReject(repo passwordreset.Repository, audit *audit.Dispatcher) *Reject {
	return &Reject{repo: repo, audit: audit, now: time.Now}
}

func (uc *Reject) Execute(ctx context.Context, in ReviewInput) (*models.PasswordResetRequest, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	req, err := uc.repo.Review(ctx, in.RequestID, func(r *models.PasswordResetRequest) error {
		return passwordreset.Reject(r, in.Caller.UserID, now)
	}, "")
	if err != nil {
		return nil, reviewError(err)
	}

	metrics.PasswordResets.WithLabelValues("rejected").Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "password_reset_rejected",
		Entity:   "password_reset_request",
		EntityID: &req.ID,
		Metadata: map[string]uint{"user_id": req.UserID},
	})
	return req, nil
}

// reviewError folds a missing row and a lost race into the same answer as
// an already handled request.
func reviewError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return passwordreset.ErrNotReviewable
	}
	return err
}
