package account

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-sales/internal/auth"
	account "github.com/BruksfildServices01/barber-sales/internal/domain/account"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// EnsureAdmin creates the bootstrap admin when no user exists yet.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, repo account.Repository, hasher *auth.Hasher, username, password string) (bool, error) {
	n, err := repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	username, err = normalizeUsername(username)
	if err != nil {
		return false, err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	if err := repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
