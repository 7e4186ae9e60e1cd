package visit

import (
	"testing"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

func price(v float64) *float64 { return &v }

func TestValidateLinesAndTotal(t *testing.T) {
	lines, err := ValidateLines([]LineInput{
		{ServiceID: 1, Quantity: 2, UnitPrice: price(20)},
		{ServiceID: 2, UnitPrice: price(0.1)},
		{ServiceID: 1, Quantity: 3, UnitPrice: price(0.2)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if lines[1].Quantity != 1 {
		t.Fatalf("default quantity = %d", lines[1].Quantity)
	}
	// 40.00 + 0.10 + 0.60 without float drift
	if got := TotalCents(lines); got != 4070 {
		t.Fatalf("total = %d cents", got)
	}
	if ids := ServiceIDs(lines); len(ids) != 2 {
		t.Fatalf("distinct ids = %v", ids)
	}
}

func TestValidateLinesRejects(t *testing.T) {
	cases := map[string]struct {
		in   []LineInput
		code string
	}{
		"no lines":        {nil, "services_required"},
		"missing service": {[]LineInput{{UnitPrice: price(1)}}, "service_required"},
		"negative qty":    {[]LineInput{{ServiceID: 1, Quantity: -1, UnitPrice: price(1)}}, "invalid_quantity"},
		"negative price":  {[]LineInput{{ServiceID: 1, UnitPrice: price(-0.01)}}, "invalid_price"},
		"missing price":   {[]LineInput{{ServiceID: 1}}, "invalid_price"},
		"huge price":      {[]LineInput{{ServiceID: 1, UnitPrice: price(1e17)}}, "invalid_price"},
		"huge qty":        {[]LineInput{{ServiceID: 1, Quantity: MaxQuantity + 1, UnitPrice: price(1)}}, "invalid_quantity"},
		"total too large": {[]LineInput{{ServiceID: 1, Quantity: 1000, UnitPrice: price(99_999_999.99)}}, "total_too_large"},
	}
	for name, tc := range cases {
		_, err := ValidateLines(tc.in)
		if !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: got %v, want %s", name, err, tc.code)
		}
	}
}

func TestLargestAmountAccepted(t *testing.T) {
	lines, err := ValidateLines([]LineInput{{ServiceID: 1, UnitPrice: price(99_999_999.99)}})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := TotalCents(lines); got != MaxAmountCents {
		t.Fatalf("total = %d cents", got)
	}
}

func TestZeroPriceAllowed(t *testing.T) {
	lines, err := ValidateLines([]LineInput{{ServiceID: 1, UnitPrice: price(0)}})
	if err != nil || TotalCents(lines) != 0 {
		t.Fatalf("zero price line: %v", err)
	}
}

func TestResolvePayment(t *testing.T) {
	if _, _, err := ResolvePayment("momo", "   "); !httperr.IsBusiness(err, "momo_reference_required") {
		t.Fatalf("blank momo reference: %v", err)
	}

	m, ref, err := ResolvePayment("MoMo", " TX-1 ")
	if err != nil || m != PaymentMomo || *ref != "TX-1" {
		t.Fatalf("momo: %v %v %v", m, ref, err)
	}

	m, ref, err = ResolvePayment("cash", "TX-2")
	if err != nil || m != PaymentCash || ref != nil {
		t.Fatalf("cash must drop reference: %v %v %v", m, ref, err)
	}

	if m, _, _ := ResolvePayment("card", ""); m != PaymentCash {
		t.Fatalf("unknown method = %s", m)
	}
	if PaymentMomo.Label() != "MoMo" || PaymentCash.Label() != "Cash" {
		t.Fatal("labels")
	}
}
