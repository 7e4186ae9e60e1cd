package account

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type Repository interface {
	CountUsers(ctx context.Context) (int64, error)

	// GetByID and GetByUsername return domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create fails with domain.ErrDuplicate on a taken username.
	Create(ctx context.Context, u *models.User) error

	// List returns every user ordered by id with Barber loaded.
	List(ctx context.Context) ([]models.User, error)

	BarberExists(ctx context.Context, id uint) (bool, error)

	// SetPassword replaces the hash and the change-required flag.
	SetPassword(ctx context.Context, id uint, hash string, requireChange bool) error

	// Delete removes the user and its reset requests atomically.
	Delete(ctx context.Context, id uint) error
}
