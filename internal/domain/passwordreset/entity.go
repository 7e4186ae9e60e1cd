package passwordreset

import (
	"time"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func New(userID uint, now time.Time) *models.PasswordResetRequest {
	return &models.PasswordResetRequest{
		UserID:      userID,
		Status:      string(InitialStatus()),
		RequestedAt: now,
	}
}

func Approve(req *models.PasswordResetRequest, reviewerID uint, now time.Time) error {
	return review(req, StatusApproved, reviewerID, now)
}

func Reject(req *models.PasswordResetRequest, reviewerID uint, now time.Time) error {
	return review(req, StatusRejected, reviewerID, now)
}

func review(req *models.PasswordResetRequest, to Status, reviewerID uint, now time.Time) error {
	if err := CanReview(Status(req.Status)); err != nil {
		return err
	}
	req.Status = string(to)
	req.ReviewedAt = &now
	req.ReviewedBy = &reviewerID
	return nil
}
