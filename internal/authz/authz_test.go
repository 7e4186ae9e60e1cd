package authz

import (
	"errors"
	"testing"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

func TestCheck(t *testing.T) {
	barberID := uint(7)
	admin := Identity{UserID: 1, Role: RoleAdmin}
	barber := Identity{UserID: 2, Role: RoleBarber, BarberID: &barberID}
	barberOp := OnlyBarbers("Only barbers can do this.")

	cases := []struct {
		name string
		id   Identity
		req  Requirement
		kind httperr.Kind
	}{
		{"admin on admin op", admin, Admin, ""},
		{"barber on admin op", barber, Admin, httperr.KindForbidden},
		{"admin on barber op", admin, barberOp, httperr.KindForbidden},
		{"barber on barber op", barber, barberOp, ""},
		{"any role", barber, Any, ""},
		{"anonymous", Identity{}, Any, httperr.KindUnauthorized},
		{"anonymous on admin op", Identity{}, Admin, httperr.KindUnauthorized},
	}

	for _, tc := range cases {
		err := Check(tc.id, tc.req)
		if tc.kind == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		kind, ok := httperr.KindOf(err)
		if !ok || kind != tc.kind {
			t.Fatalf("%s: got %v, want kind %s", tc.name, err, tc.kind)
		}
	}
}

func TestOwnBarber(t *testing.T) {
	id := uint(3)
	if got, ok := (Identity{UserID: 1, Role: RoleBarber, BarberID: &id}).OwnBarber(); !ok || got != 3 {
		t.Fatalf("OwnBarber = %d, %v", got, ok)
	}
	if _, ok := (Identity{UserID: 1, Role: RoleBarber}).OwnBarber(); ok {
		t.Fatal("unlinked barber should have no scope")
	}
	if _, ok := (Identity{UserID: 1, Role: RoleAdmin, BarberID: &id}).OwnBarber(); ok {
		t.Fatal("admin should have no barber scope")
	}
}

func TestOnlyBarbersMessage(t *testing.T) {
	err := Check(Identity{UserID: 1, Role: RoleAdmin}, OnlyBarbers("Only barbers can record visits."))
	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Message != "Only barbers can record visits." {
		t.Fatalf("unexpected error %v", err)
	}
}
