package passwordreset

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// Decision is applied to a pending request inside the review transaction.
type Decision func(req *models.PasswordResetRequest) error

type Repository interface {
	HasPending(ctx context.Context, userID uint) (bool, error)

	// Create fails with domain.ErrDuplicate when the user already has a
	// pending request.
	Create(ctx context.Context, req *models.PasswordResetRequest) error

	// ListPending returns pending requests oldest first, with User.Barber loaded.
	ListPending(ctx context.Context) ([]models.PasswordResetRequest, error)

	// Review loads the request, applies decide and saves the transition only
	// if the row is still pending. When newPasswordHash is not empty the
	// requesting user's password is replaced and flagged for change in the
	// same transaction. Returns domain.ErrNotFound for a missing request or a
	// lost race.
	Review(ctx context.Context, id uint, decide Decision, newPasswordHash string) (*models.PasswordResetRequest, error)
}
