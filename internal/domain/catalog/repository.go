package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// ServicePatch carries the fields an update may change.
type ServicePatch struct {
	Name  *string
	Price *float64
}

type Repository interface {
	// -------- Barbers --------
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	RenameBarber(ctx context.Context, id uint, name string) (*models.Barber, error)

	// DeleteBarber removes the barber together with its visits, their lines,
	// its user accounts and their reset requests, atomically.
	DeleteBarber(ctx context.Context, id uint) error

	// -------- Services --------
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, id uint, patch ServicePatch) (*models.Service, error)

	// DeleteService fails with domain.ErrInUse while any visit line
	// references the service.
	DeleteService(ctx context.Context, id uint) error
}
