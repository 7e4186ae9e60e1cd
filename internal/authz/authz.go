// Package authz decides whether an authenticated caller may run an operation.
package authz

import (
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBarber Role = "barber"
)

// Identity is the caller as loaded for the current request.
type Identity struct {
	UserID                 uint
	Username               string
	Role                   Role
	BarberID               *uint
	RequiresPasswordChange bool
}

func (i Identity) IsAdmin() bool  { return i.Role == RoleAdmin }
func (i Identity) IsBarber() bool { return i.Role == RoleBarber }

// OwnBarber returns the barber a barber-role caller is scoped to.
// ok is false for admins and for barber accounts without a linked barber.
func (i Identity) OwnBarber() (uint, bool) {
	if i.Role != RoleBarber || i.BarberID == nil {
		return 0, false
	}
	return *i.BarberID, true
}

// Requirement is the access rule an operation declares.
type Requirement interface {
	Allows(Identity) bool
	Deny() error
}

type roleRequirement struct {
	role    Role
	message string
}

func (r roleRequirement) Allows(id Identity) bool { return id.Role == r.role }
func (r roleRequirement) Deny() error             { return httperr.Forbidden("forbidden", r.message) }

type authenticated struct{}

func (authenticated) Allows(id Identity) bool { return id.UserID != 0 }
func (authenticated) Deny() error {
	return httperr.Unauthenticated("unauthenticated", "Login required.")
}

var (
	Admin Requirement = roleRequirement{role: RoleAdmin, message: "Admin access required."}
	Any   Requirement = authenticated{}
)

// OnlyBarbers builds a barber requirement with a custom refusal message.
func OnlyBarbers(message string) Requirement {
	return roleRequirement{role: RoleBarber, message: message}
}

// Check is called once, first, by every operation. It never looks at the
// target resource, so a refusal says nothing about whether the target exists.
func Check(id Identity, req Requirement) error {
	if id.UserID == 0 {
		return Any.Deny()
	}
	if !req.Allows(id) {
		return req.Deny()
	}
	return nil
}
