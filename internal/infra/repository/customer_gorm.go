package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	customer "github.com/BruksfildServices01/barber-sales/internal/domain/customer"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

var _ customer.Repository = (*CustomerGormRepository)(nil)

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Search(ctx context.Context, q string, limit int) ([]models.Customer, error) {
	tx := r.db.WithContext(ctx).Model(&models.Customer{})

	if q = strings.TrimSpace(q); q != "" {
		pattern := containsPattern(q)
		tx = tx.Where(
			"LOWER(name) LIKE ? ESCAPE '!' OR LOWER(COALESCE(phone, '')) LIKE ? ESCAPE '!'",
			pattern, pattern,
		)
	}

	var out []models.Customer
	if err := tx.Order("name ASC").Order("id ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CustomerGormRepository) FindExact(ctx context.Context, name, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND COALESCE(phone, '') = ?", strings.ToLower(name), phone).
		Order("id ASC").
		First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}
