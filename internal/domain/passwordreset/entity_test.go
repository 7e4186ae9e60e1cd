package passwordreset

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

func TestReviewTransitions(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	req := New(5, now)
	if req.Status != string(StatusPending) {
		t.Fatalf("initial status = %s", req.Status)
	}

	if err := Approve(req, 1, now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if req.Status != string(StatusApproved) || *req.ReviewedBy != 1 || !req.ReviewedAt.Equal(now) {
		t.Fatalf("unexpected request %+v", req)
	}

	for name, act := range map[string]func() error{
		"approve twice":   func() error { return Approve(req, 1, now) },
		"reject approved": func() error { return Reject(req, 1, now) },
	} {
		if err := act(); !httperr.IsBusiness(err, "request_not_found") {
			t.Fatalf("%s: got %v", name, err)
		}
	}
}

func TestRejectLeavesTerminalState(t *testing.T) {
	req := New(5, time.Now())
	if err := Reject(req, 2, time.Now()); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := CanReview(Status(req.Status)); err == nil {
		t.Fatal("rejected request still reviewable")
	}
}
