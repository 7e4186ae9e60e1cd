package account

import (
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

// Policy holds the credential rules an install is configured with.
type Policy struct {
	MinPasswordLength    int
	DefaultResetPassword string
}

func (p Policy) checkNew(password, confirm string) error {
	if len(password) < p.MinPasswordLength {
		return httperr.Validation("password_too_short", "Password is too short.")
	}
	if password != confirm {
		return httperr.Validation("password_mismatch", "Passwords do not match.")
	}
	return nil
}

func normalizeUsername(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", httperr.Validation("username_required", "Username is required.")
	}
	return u, nil
}
