package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	catalog "github.com/BruksfildServices01/barber-sales/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

var (
	errServiceNotFound = httperr.NotFoundErr("service_not_found", "Service not found.")
	errServiceInUse    = httperr.Conflict(
		"service_in_use",
		"This service is used in existing visits. Remove those visits first.",
	)
)

// ======================================================
// LIST
// ======================================================

type ListServices struct {
	repo catalog.Repository
}

func NewListServices(repo catalog.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, caller authz.Identity) ([]models.Service, error) {
	if err := authz.Check(caller, authz.Any); err != nil {
		return nil, err
	}
	return uc.repo.ListServices(ctx)
}

// ======================================================
// CREATE
// ======================================================

type CreateServiceInput struct {
	Caller authz.Identity
	Name   string
	Price  float64
}

type CreateService struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewCreateService(repo catalog.Repository, audit *audit.Dispatcher) *CreateService {
	return &CreateService{repo: repo, audit: audit}
}

func (uc *CreateService) Execute(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}
	name, err := catalog.NormalizeName(in.Name, "name_required", "Service name is required.")
	if err != nil {
		return nil, err
	}
	price, err := catalog.NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}

	s := &models.Service{Name: name, Price: price}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"name": s.Name, "price": s.Price},
	})
	return s, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateServiceInput struct {
	Caller    authz.Identity
	ServiceID uint
	Name      *string
	Price     *float64
}

type UpdateService struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(repo catalog.Repository, audit *audit.Dispatcher) *UpdateService {
	return &UpdateService{repo: repo, audit: audit}
}

// Execute changes the catalog entry only; recorded visits keep their prices.
func (uc *UpdateService) Execute(ctx context.Context, in UpdateServiceInput) (*models.Service, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}

	var patch catalog.ServicePatch
	if in.Name != nil {
		name, err := catalog.NormalizeName(*in.Name, "name_required", "Service name is required.")
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if in.Price != nil {
		price, err := catalog.NormalizePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}
	if patch.Name == nil && patch.Price == nil {
		return nil, httperr.Validation("nothing_to_update", "Provide a name or a price.")
	}

	s, err := uc.repo.UpdateService(ctx, in.ServiceID, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"name": s.Name, "price": s.Price},
	})
	return s, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteServiceInput struct {
	Caller    authz.Identity
	ServiceID uint
}

type DeleteService struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewDeleteService(repo catalog.Repository, audit *audit.Dispatcher) *DeleteService {
	return &DeleteService{repo: repo, audit: audit}
}

func (uc *DeleteService) Execute(ctx context.Context, in DeleteServiceInput) error {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return err
	}

	err := uc.repo.DeleteService(ctx, in.ServiceID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errServiceNotFound
	case errors.Is(err, domain.ErrInUse):
		return errServiceInUse
	case err != nil:
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &in.ServiceID,
	})
	return nil
}
