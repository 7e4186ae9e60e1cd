package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/domain"
	account "github.com/BruksfildServices01/barber-sales/internal/domain/account"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

var _ account.Repository = (*AccountGormRepository)(nil)

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *AccountGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Barber").First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit("Barber").Create(u).Error)
}

func (r *AccountGormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Preload("Barber").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AccountGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Barber{}, id)
}

func (r *AccountGormRepository) SetPassword(ctx context.Context, id uint, hash string, requireChange bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":            hash,
			"requires_password_change": requireChange,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PasswordResetRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PasswordResetRequest{}).
			Where("reviewed_by = ?", id).
			Update("reviewed_by", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		return translate(tx.Delete(&u).Error)
	})
}
