package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Fatalf("leap day: %v", err)
	}
	for _, bad := range []string{"", "2024-2-1", "01/02/2024", "2023-02-29", "2024-03-01T00:00:00Z"} {
		if _, err := ParseDate(bad); !httperr.IsBusiness(err, "invalid_date") {
			t.Fatalf("%q accepted: %v", bad, err)
		}
	}
}

func TestDateRange(t *testing.T) {
	if err := DateRange("", ""); err != nil {
		t.Fatalf("open range: %v", err)
	}
	if err := DateRange("2024-01-01", "2024-01-01"); err != nil {
		t.Fatalf("single day: %v", err)
	}
	if err := DateRange("2024-02-01", "2024-01-01"); !httperr.IsBusiness(err, "invalid_range") {
		t.Fatalf("inverted range: %v", err)
	}
	if err := DateRange("x", ""); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("bad from: %v", err)
	}
}

type payload struct {
	Name string `json:"name" binding:"required"`
	Day  string `json:"day" binding:"omitempty,date"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(payload{Day: "yesterday"})
	details := ToDetails(err)
	if details["name"] != "is required" {
		t.Fatalf("details = %v", details)
	}
	if details["day"] != "must be a date (YYYY-MM-DD)" {
		t.Fatalf("details = %v", details)
	}
}
