package visit

import (
	"strings"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = models.PaymentCash
	PaymentMomo PaymentMethod = models.PaymentMomo
)

// Label is the human form used in exports.
func (p PaymentMethod) Label() string {
	if p == PaymentMomo {
		return "MoMo"
	}
	return "Cash"
}

// ParsePaymentMethod treats anything other than "momo" as cash.
func ParsePaymentMethod(raw string) PaymentMethod {
	if strings.EqualFold(strings.TrimSpace(raw), string(PaymentMomo)) {
		return PaymentMomo
	}
	return PaymentCash
}

// ResolvePayment returns the method and the reference to store. Mobile money
// needs a non-empty reference; cash never stores one.
func ResolvePayment(rawMethod, rawReference string) (PaymentMethod, *string, error) {
	method := ParsePaymentMethod(rawMethod)
	if method == PaymentCash {
		return method, nil, nil
	}

	ref := strings.TrimSpace(rawReference)
	if ref == "" {
		return "", nil, httperr.Validation(
			"momo_reference_required",
			"MoMo reference is required for mobile money payments.",
		)
	}
	return method, &ref, nil
}
