package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// SampleServices is the starter catalog for a fresh install.
var SampleServices = []models.Service{
	{Name: "Haircut", Price: 25},
	{Name: "Beard Trim", Price: 15},
	{Name: "Hot Towel Shave", Price: 30},
	{Name: "Haircut + Beard", Price: 35},
}

// SeedServices inserts SampleServices when the catalog is empty and reports
// how many rows were written.
func SeedServices(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Service{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]models.Service, len(SampleServices))
	copy(rows, SampleServices)
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ClearBarbers removes every visit, every barber account and every barber.
// Services, customers and admin accounts survive.
func ClearBarbers(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		barberUsers := tx.Model(&models.User{}).Select("id").Where("role = ?", models.RoleBarber)

		if err := tx.Where("user_id IN (?)", barberUsers).Delete(&models.PasswordResetRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.VisitService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role = ?", models.RoleBarber).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Barber{}).Error
	})
}
