package dto

import "time"

type VisitLineDTO struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type VisitListDTO struct {
	ID            uint           `json:"id"`
	VisitDate     string         `json:"visit_date"`
	BarberID      uint           `json:"barber_id"`
	BarberName    string         `json:"barber_name"`
	CustomerID    uint           `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	TotalAmount   float64        `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
	MomoReference *string        `json:"momo_reference"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	Services      []VisitLineDTO `json:"services"`
}
