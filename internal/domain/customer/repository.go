package customer

import (
	"context"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type Repository interface {
	// Search matches q against name or phone, case-insensitively, ordered by
	// name. An empty q lists customers by name.
	Search(ctx context.Context, q string, limit int) ([]models.Customer, error)

	// FindExact returns domain.ErrNotFound unless a customer has this name
	// (ignoring case) and exactly this phone.
	FindExact(ctx context.Context, name, phone string) (*models.Customer, error)

	Create(ctx context.Context, c *models.Customer) error
}
