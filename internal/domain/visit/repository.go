package visit

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// Filter narrows a visit listing. Dates are inclusive YYYY-MM-DD bounds.
type Filter struct {
	BarberID *uint
	From     string
	To       string
	Limit    int

	// Unbounded returns every matching visit, ignoring Limit and the
	// listing cap. Exports use it.
	Unbounded bool
}

type Repository interface {
	BarberExists(ctx context.Context, id uint) (bool, error)
	CustomerExists(ctx context.Context, id uint) (bool, error)

	// MissingServices returns the ids in ids that have no catalog row.
	MissingServices(ctx context.Context, ids []uint) ([]uint, error)

	// Create inserts the visit and its Services in one transaction.
	Create(ctx context.Context, v *models.Visit) error

	// List returns visits newest first with Barber, Customer and
	// Services.Service loaded.
	List(ctx context.Context, f Filter) ([]models.Visit, error)
}
