package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/domain"
	catalog "github.com/BruksfildServices01/barber-sales/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CatalogGormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *CatalogGormRepository) RenameBarber(ctx context.Context, id uint, name string) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	b.Name = name
	if err := r.db.WithContext(ctx).Save(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *CatalogGormRepository) DeleteBarber(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Barber
		if err := tx.First(&b, id).Error; err != nil {
			return translate(err)
		}

		usersOf := func() *gorm.DB {
			return tx.Model(&models.User{}).Select("id").Where("barber_id = ?", id)
		}
		visitsOf := func() *gorm.DB {
			return tx.Model(&models.Visit{}).Select("id").Where("barber_id = ?", id)
		}

		if err := tx.Where("user_id IN (?)", usersOf()).
			Delete(&models.PasswordResetRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PasswordResetRequest{}).
			Where("reviewed_by IN (?)", usersOf()).
			Update("reviewed_by", gorm.Expr("NULL")).Error; err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}
		if err := tx.Where("visit_id IN (?)", visitsOf()).
			Delete(&models.VisitService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", id).Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		return translate(tx.Delete(&b).Error)
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, id uint, patch catalog.ServicePatch) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if err := r.db.WithContext(ctx).Save(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Service
		if err := tx.First(&s, id).Error; err != nil {
			return translate(err)
		}

		var refs int64
		if err := tx.Model(&models.VisitService{}).
			Where("service_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrInUse
		}

		// a line inserted after the count still trips the foreign key
		return translate(tx.Delete(&s).Error)
	})
}
