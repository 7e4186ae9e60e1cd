package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	account "github.com/BruksfildServices01/barber-sales/internal/domain/account"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

var errInvalidCredentials = httperr.Unauthenticated("invalid_credentials", "Invalid username or password.")

// ======================================================
// LOGIN
// ======================================================

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type Login struct {
	repo   account.Repository
	hasher *auth.Hasher
	jwt    *auth.JWTer
}

func NewLogin(repo account.Repository, hasher *auth.Hasher, jwt *auth.JWTer) *Login {
	return &Login{repo: repo, hasher: hasher, jwt: jwt}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	username, err := normalizeUsername(in.Username)
	if err != nil || in.Password == "" {
		return nil, errInvalidCredentials
	}

	u, err := uc.repo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !uc.hasher.Matches(u.PasswordHash, in.Password) {
		return nil, errInvalidCredentials
	}

	token, claims, err := uc.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      u,
	}, nil
}

// ======================================================
// ME
// ======================================================

type Me struct {
	repo account.Repository
}

func NewMe(repo account.Repository) *Me {
	return &Me{repo: repo}
}

func (uc *Me) Execute(ctx context.Context, caller authz.Identity) (*models.User, error) {
	if err := authz.Check(caller, authz.Any); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, caller.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Unauthenticated("unauthenticated", "Login required.")
	}
	return u, err
}

// ======================================================
// LOGOUT
// ======================================================

type LogoutInput struct {
	Caller    authz.Identity
	TokenID   string
	ExpiresAt time.Time
}

type Logout struct {
	revocations auth.RevocationStore
}

// NewLogout accepts a nil store, in which case logout only drops the
// client-side token.
func NewLogout(revocations auth.RevocationStore) *Logout {
	return &Logout{revocations: revocations}
}

func (uc *Logout) Execute(ctx context.Context, in LogoutInput) error {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return err
	}
	if uc.revocations == nil || in.TokenID == "" {
		return nil
	}
	return uc.revocations.Revoke(ctx, in.TokenID, in.ExpiresAt)
}

// ======================================================
// CHANGE PASSWORD
// ======================================================

type ChangePasswordInput struct {
	Caller          authz.Identity
	NewPassword     string
	ConfirmPassword string
}

type ChangePassword struct {
	repo   account.Repository
	hasher *auth.Hasher
	policy Policy
	audit  *audit.Dispatcher
}

func NewChangePassword(
	repo account.Repository,
	hasher *auth.Hasher,
	policy Policy,
	audit *audit.Dispatcher,
) *ChangePassword {
	return &ChangePassword{repo: repo, hasher: hasher, policy: policy, audit: audit}
}

// Execute is only open to accounts flagged for a password change, right
// after creation or an admin reset.
func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return err
	}

	u, err := uc.repo.GetByID(ctx, in.Caller.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.Unauthenticated("unauthenticated", "Login required.")
	}
	if err != nil {
		return err
	}
	if !u.RequiresPasswordChange {
		return httperr.Validation("password_change_not_required", "Password change is not required.")
	}
	if err := uc.policy.checkNew(in.NewPassword, in.ConfirmPassword); err != nil {
		return err
	}

	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.repo.SetPassword(ctx, u.ID, hash, false); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   "password_changed",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return nil
}
