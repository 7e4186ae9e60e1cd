package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	account "github.com/BruksfildServices01/barber-sales/internal/domain/account"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

var errUserNotFound = httperr.NotFoundErr("user_not_found", "User not found.")

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	repo account.Repository
}

func NewListUsers(repo account.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, caller authz.Identity) ([]models.User, error) {
	if err := authz.Check(caller, authz.Admin); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx)
}

// ======================================================
// CREATE BARBER USER
// ======================================================

type CreateBarberUserInput struct {
	Caller   authz.Identity
	Username string
	Password string
	BarberID *uint
}

type CreateBarberUser struct {
	repo   account.Repository
	hasher *auth.Hasher
	audit  *audit.Dispatcher
}

func NewCreateBarberUser(repo account.Repository, hasher *auth.Hasher, audit *audit.Dispatcher) *CreateBarberUser {
	return &CreateBarberUser{repo: repo, hasher: hasher, audit: audit}
}

func (uc *CreateBarberUser) Execute(ctx context.Context, in CreateBarberUserInput) (*models.User, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}

	username, err := normalizeUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, httperr.Validation("password_required", "Password is required.")
	}

	barberID := in.BarberID
	if barberID != nil && *barberID == 0 {
		barberID = nil
	}
	if barberID != nil {
		ok, err := uc.repo.BarberExists(ctx, *barberID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.Validation("barber_not_found", "Barber does not exist.")
		}
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:               username,
		PasswordHash:           hash,
		Role:                   models.RoleBarber,
		BarberID:               barberID,
		RequiresPasswordChange: true,
	}
	err = uc.repo.Create(ctx, u)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, httperr.Conflict("username_taken", "Username already exists.")
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "barber_user_created",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"username": u.Username, "barber_id": u.BarberID},
	})
	return u, nil
}

// ======================================================
// RESET PASSWORD (admin)
// ======================================================

type ResetUserPasswordInput struct {
	Caller authz.Identity
	UserID uint
}

type ResetUserPassword struct {
	repo   account.Repository
	hasher *auth.Hasher
	policy Policy
	audit  *audit.Dispatcher
}

func NewResetUserPassword(
	repo account.Repository,
	hasher *auth.Hasher,
	policy Policy,
	audit *audit.Dispatcher,
) *ResetUserPassword {
	return &ResetUserPassword{repo: repo, hasher: hasher, policy: policy, audit: audit}
}

// Execute sets the default password and forces a change at next login.
func (uc *ResetUserPassword) Execute(ctx context.Context, in ResetUserPasswordInput) error {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return err
	}

	hash, err := uc.hasher.Hash(uc.policy.DefaultResetPassword)
	if err != nil {
		return err
	}
	err = uc.repo.SetPassword(ctx, in.UserID, hash, true)
	if errors.Is(err, domain.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &in.UserID,
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteUserInput struct {
	Caller authz.Identity
	UserID uint
}

type DeleteUser struct {
	repo  account.Repository
	audit *audit.Dispatcher
}

func NewDeleteUser(repo account.Repository, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

func (uc *DeleteUser) Execute(ctx context.Context, in DeleteUserInput) error {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return err
	}

	u, err := uc.repo.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return httperr.Forbidden("forbidden", "Cannot delete the admin account")
	}

	err = uc.repo.Delete(ctx, u.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &in.UserID,
		Metadata: map[string]string{"username": u.Username},
	})
	return nil
}
