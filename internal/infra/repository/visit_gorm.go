package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

const maxVisitRows = 500

type VisitGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*VisitGormRepository)(nil)

func NewVisitGormRepository(db *gorm.DB) *VisitGormRepository {
	return &VisitGormRepository{db: db}
}

// --------------------------------------------------
// Existence checks
// --------------------------------------------------

func (r *VisitGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Barber{}, id)
}

func (r *VisitGormRepository) CustomerExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Customer{}, id)
}

func (r *VisitGormRepository) MissingServices(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (r *VisitGormRepository) Create(ctx context.Context, v *models.Visit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := v.Services
		v.Services = nil

		if err := tx.Omit("Barber", "Customer").Create(v).Error; err != nil {
			return translate(err)
		}
		for i := range lines {
			lines[i].VisitID = v.ID
		}
		if err := tx.Omit("Service").Create(&lines).Error; err != nil {
			return translate(err)
		}

		v.Services = lines
		return nil
	})
}

func (r *VisitGormRepository) List(ctx context.Context, f domain.Filter) ([]models.Visit, error) {
	limit := f.Limit
	if limit <= 0 || limit > maxVisitRows {
		limit = maxVisitRows
	}

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Customer").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Services.Service")

	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.From != "" {
		q = q.Where("visit_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("visit_date <= ?", f.To)
	}

	q = q.Order("visit_date DESC").Order("created_at DESC").Order("id DESC")
	if !f.Unbounded {
		q = q.Limit(limit)
	}

	var visits []models.Visit
	if err := q.Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
