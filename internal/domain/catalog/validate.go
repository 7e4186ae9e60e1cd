package catalog

import (
	"math"
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

func NormalizeName(raw, code, message string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", httperr.Validation(code, message)
	}
	return name, nil
}

// NormalizePrice rounds to cents and rejects negative or non-finite values.
func NormalizePrice(p float64) (float64, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, httperr.Validation("invalid_price", "Price must be zero or more.")
	}
	return math.Round(p*100) / 100, nil
}
