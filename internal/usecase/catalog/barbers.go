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

var errBarberNotFound = httperr.NotFoundErr("barber_not_found", "Barber not found.")

// ======================================================
// LIST
// ======================================================

type ListBarbers struct {
	repo catalog.Repository
}

func NewListBarbers(repo catalog.Repository) *ListBarbers {
	return &ListBarbers{repo: repo}
}

func (uc *ListBarbers) Execute(ctx context.Context, caller authz.Identity) ([]models.Barber, error) {
	if err := authz.Check(caller, authz.Any); err != nil {
		return nil, err
	}
	return uc.repo.ListBarbers(ctx)
}

// ======================================================
// CREATE
// ======================================================

type CreateBarberInput struct {
	Caller authz.Identity
	Name   string
}

type CreateBarber struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewCreateBarber(repo catalog.Repository, audit *audit.Dispatcher) *CreateBarber {
	return &CreateBarber{repo: repo, audit: audit}
}

func (uc *CreateBarber) Execute(ctx context.Context, in CreateBarberInput) (*models.Barber, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}
	name, err := catalog.NormalizeName(in.Name, "name_required", "Barber name is required.")
	if err != nil {
		return nil, err
	}

	b := &models.Barber{Name: name}
	if err := uc.repo.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &b.ID,
		Metadata: map[string]string{"name": b.Name},
	})
	return b, nil
}

// ======================================================
// RENAME
// ======================================================

type RenameBarberInput struct {
	Caller   authz.Identity
	BarberID uint
	Name     string
}

type RenameBarber struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewRenameBarber(repo catalog.Repository, audit *audit.Dispatcher) *RenameBarber {
	return &RenameBarber{repo: repo, audit: audit}
}

func (uc *RenameBarber) Execute(ctx context.Context, in RenameBarberInput) (*models.Barber, error) {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return nil, err
	}
	name, err := catalog.NormalizeName(in.Name, "name_required", "Barber name is required.")
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.RenameBarber(ctx, in.BarberID, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errBarberNotFound
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "barber_renamed",
		Entity:   "barber",
		EntityID: &b.ID,
		Metadata: map[string]string{"name": b.Name},
	})
	return b, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteBarberInput struct {
	Caller   authz.Identity
	BarberID uint
}

type DeleteBarber struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewDeleteBarber(repo catalog.Repository, audit *audit.Dispatcher) *DeleteBarber {
	return &DeleteBarber{repo: repo, audit: audit}
}

// Execute removes the barber with all of its visits and accounts.
func (uc *DeleteBarber) Execute(ctx context.Context, in DeleteBarberInput) error {
	if err := authz.Check(in.Caller, authz.Admin); err != nil {
		return err
	}

	err := uc.repo.DeleteBarber(ctx, in.BarberID)
	if errors.Is(err, domain.ErrNotFound) {
		return errBarberNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: &in.BarberID,
	})
	return nil
}
