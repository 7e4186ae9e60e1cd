package report

import "context"

// Filter bounds a report. Dates are inclusive YYYY-MM-DD; BarberID, when
// set, restricts every figure to that barber.
type Filter struct {
	From     string
	To       string
	BarberID *uint
}

type Overall struct {
	TotalVisits  int64   `json:"total_visits"`
	TotalRevenue float64 `json:"total_revenue"`
}

type BarberTotal struct {
	BarberID   uint    `json:"barber_id"`
	BarberName string  `json:"barber_name"`
	VisitCount int64   `json:"visit_count"`
	TotalSales float64 `json:"total_sales"`
}

type ServiceTotal struct {
	ServiceID     uint    `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	TimesRendered int64   `json:"times_rendered"`
	Revenue       float64 `json:"revenue"`
}

type Repository interface {
	Overall(ctx context.Context, f Filter) (Overall, error)

	// ByBarber includes barbers without visits in range with zero figures,
	// ordered by total sales, highest first.
	ByBarber(ctx context.Context, f Filter) ([]BarberTotal, error)

	// ByService is ordered by revenue, highest first.
	ByService(ctx context.Context, f Filter) ([]ServiceTotal, error)
}
