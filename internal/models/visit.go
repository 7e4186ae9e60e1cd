package models

import "time"

const (
	PaymentCash = "cash"
	PaymentMomo = "momo"
)

type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID   uint      `gorm:"not null;index:idx_visits_barber_date,priority:1" json:"barber_id"`
	Barber     *Barber   `gorm:"constraint:OnUpdate:CASCADE;" json:"barber,omitempty"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE;" json:"customer,omitempty"`

	// VisitDate is a calendar date, YYYY-MM-DD.
	VisitDate   string  `gorm:"size:10;not null;index;index:idx_visits_barber_date,priority:2" json:"visit_date"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Notes       string  `gorm:"size:500" json:"notes"`

	PaymentMethod string  `gorm:"size:10;not null;default:'cash';check:chk_visits_payment,payment_method IN ('cash','momo')" json:"payment_method"`
	MomoReference *string `gorm:"size:100" json:"momo_reference"`

	Services []VisitService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// VisitService is one line of a visit. UnitPrice is the price charged at
// sale time and never follows later catalog changes.
type VisitService struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	VisitID   uint     `gorm:"not null;index" json:"visit_id"`
	ServiceID uint     `gorm:"not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`
	Quantity  int      `gorm:"not null;default:1;check:chk_visit_services_quantity,quantity >= 1" json:"quantity"`
	UnitPrice float64  `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
