package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	customer "github.com/BruksfildServices01/barber-sales/internal/domain/customer"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

const (
	searchLimit = 50
	browseLimit = 100
	maxPhoneLen = 30
)

// ======================================================
// SEARCH
// ======================================================

type SearchCustomersInput struct {
	Caller authz.Identity
	Query  string
}

type SearchCustomers struct {
	repo customer.Repository
}

func NewSearchCustomers(repo customer.Repository) *SearchCustomers {
	return &SearchCustomers{repo: repo}
}

func (uc *SearchCustomers) Execute(ctx context.Context, in SearchCustomersInput) ([]models.Customer, error) {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return nil, err
	}

	q := strings.TrimSpace(in.Query)
	limit := searchLimit
	if q == "" {
		limit = browseLimit
	}
	return uc.repo.Search(ctx, q, limit)
}

// ======================================================
// CREATE (find or create)
// ======================================================

type CreateCustomerInput struct {
	Caller authz.Identity
	Name   string
	Phone  string
}

type CreateCustomerOutput struct {
	Customer *models.Customer
	Created  bool
}

type CreateCustomer struct {
	repo  customer.Repository
	audit *audit.Dispatcher
}

func NewCreateCustomer(repo customer.Repository, audit *audit.Dispatcher) *CreateCustomer {
	return &CreateCustomer{repo: repo, audit: audit}
}

// Execute returns the customer with this name and phone, creating it when
// none exists yet.
func (uc *CreateCustomer) Execute(ctx context.Context, in CreateCustomerInput) (*CreateCustomerOutput, error) {
	if err := authz.Check(in.Caller, authz.Any); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Validation("name_required", "Customer name is required.")
	}
	phone := strings.TrimSpace(in.Phone)
	if len(phone) > maxPhoneLen {
		return nil, httperr.Validation("invalid_phone", "Phone number is too long.")
	}

	existing, err := uc.repo.FindExact(ctx, name, phone)
	if err == nil {
		return &CreateCustomerOutput{Customer: existing}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c := &models.Customer{Name: name, Phone: phone}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Caller.UserID,
		Action:   "customer_created",
		Entity:   "customer",
		EntityID: &c.ID,
	})
	return &CreateCustomerOutput{Customer: c, Created: true}, nil
}
