package models

import "time"

// Service is a catalog entry. Its price is the default offered when a visit
// is recorded; visits keep their own unit price.
type Service struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Price float64 `gorm:"type:decimal(10,2);not null;check:chk_services_price,price >= 0" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
