package visit

import (
	"math"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// LineInput is one service line as submitted by the caller.
type LineInput struct {
	ServiceID uint
	Quantity  int
	UnitPrice *float64
}

// Amounts are stored as decimal(10,2).
const (
	MaxAmountCents int64 = 9_999_999_999
	MaxQuantity          = 1000
)

// Line is a validated line with its price in cents.
type Line struct {
	ServiceID      uint
	Quantity       int
	UnitPriceCents int64
}

func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// ValidateLines checks every line and applies the default quantity of 1.
func ValidateLines(in []LineInput) ([]Line, error) {
	if len(in) == 0 {
		return nil, httperr.Validation("services_required", "At least one service is required.")
	}

	out := make([]Line, 0, len(in))
	var total int64
	for _, l := range in {
		if l.ServiceID == 0 {
			return nil, httperr.Validation("service_required", "Each line needs a service.")
		}

		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 || qty > MaxQuantity {
			return nil, httperr.Validation("invalid_quantity", "Quantity must be between 1 and 1000.")
		}

		if l.UnitPrice == nil || math.IsNaN(*l.UnitPrice) || math.IsInf(*l.UnitPrice, 0) || *l.UnitPrice < 0 {
			return nil, httperr.Validation("invalid_price", "Each line needs a price of zero or more.")
		}
		// bound before converting so huge values never reach int64
		if *l.UnitPrice >= 1e8 {
			return nil, httperr.Validation("invalid_price", "Price is too large.")
		}
		cents := ToCents(*l.UnitPrice)
		if cents > MaxAmountCents {
			return nil, httperr.Validation("invalid_price", "Price is too large.")
		}

		// each product is at most ~1e13, so the running sum cannot wrap
		total += cents * int64(qty)
		if total > MaxAmountCents {
			return nil, httperr.Validation("total_too_large", "Visit total is too large.")
		}

		out = append(out, Line{
			ServiceID:      l.ServiceID,
			Quantity:       qty,
			UnitPriceCents: cents,
		})
	}
	return out, nil
}

// TotalCents is the sum of unit price times quantity.
func TotalCents(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}

// ServiceIDs returns the distinct services referenced by lines.
func ServiceIDs(lines []Line) []uint {
	seen := make(map[uint]struct{}, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ServiceID]; ok {
			continue
		}
		seen[l.ServiceID] = struct{}{}
		ids = append(ids, l.ServiceID)
	}
	return ids
}

// ToModels turns validated lines into rows for a visit not yet saved.
func ToModels(lines []Line) []models.VisitService {
	rows := make([]models.VisitService, len(lines))
	for i, l := range lines {
		rows[i] = models.VisitService{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			UnitPrice: FromCents(l.UnitPriceCents),
		}
	}
	return rows
}
