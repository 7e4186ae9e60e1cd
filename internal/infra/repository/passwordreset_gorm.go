package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/domain"
	passwordreset "github.com/BruksfildServices01/barber-sales/internal/domain/passwordreset"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type PasswordResetGormRepository struct {
	db *gorm.DB
}

var _ passwordreset.Repository = (*PasswordResetGormRepository)(nil)

func NewPasswordResetGormRepository(db *gorm.DB) *PasswordResetGormRepository {
	return &PasswordResetGormRepository{db: db}
}

func (r *PasswordResetGormRepository) HasPending(ctx context.Context, userID uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.PasswordResetRequest{}).
		Where("user_id = ? AND status = ?", userID, passwordreset.StatusPending).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PasswordResetGormRepository) Create(ctx context.Context, req *models.PasswordResetRequest) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Reviewer").Create(req).Error)
}

func (r *PasswordResetGormRepository) ListPending(ctx context.Context) ([]models.PasswordResetRequest, error) {
	var out []models.PasswordResetRequest
	if err := r.db.WithContext(ctx).
		Preload("User.Barber").
		Where("status = ?", passwordreset.StatusPending).
		Order("requested_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PasswordResetGormRepository) Review(
	ctx context.Context,
	id uint,
	decide passwordreset.Decision,
	newPasswordHash string,
) (*models.PasswordResetRequest, error) {

	var req models.PasswordResetRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, id).Error; err != nil {
			return translate(err)
		}

		from := req.Status
		if err := decide(&req); err != nil {
			return err
		}

		// conditional on the old status so a concurrent review loses cleanly
		res := tx.Model(&models.PasswordResetRequest{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]any{
				"status":      req.Status,
				"reviewed_at": req.ReviewedAt,
				"reviewed_by": req.ReviewedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if newPasswordHash == "" {
			return nil
		}
		res = tx.Model(&models.User{}).
			Where("id = ?", req.UserID).
			Updates(map[string]any{
				"password_hash":            newPasswordHash,
				"requires_password_change": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
