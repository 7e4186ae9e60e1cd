package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if Location("Not/AZone") == nil {
		t.Fatal("nil location")
	}
	if !IsValid("UTC") || IsValid("") || IsValid("Not/AZone") {
		t.Fatal("IsValid mismatch")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	got, err := StartOfDay("2024-03-01", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC); !got.UTC().Equal(want) {
		t.Fatalf("got %v, want %v", got.UTC(), want)
	}
	if _, err := StartOfDay("01/03/2024", loc); err == nil {
		t.Fatal("expected parse error")
	}
}
