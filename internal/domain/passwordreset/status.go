package passwordreset

import "github.com/BruksfildServices01/barber-sales/internal/httperr"

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func InitialStatus() Status {
	return StatusPending
}

// CanReview reports whether a request in the current status may still be
// approved or rejected. Approved and rejected are terminal.
func CanReview(current Status) error {
	if current != StatusPending {
		return ErrNotReviewable
	}
	return nil
}

var ErrNotReviewable = httperr.NotFoundErr(
	"request_not_found",
	"Request not found or already handled.",
)
