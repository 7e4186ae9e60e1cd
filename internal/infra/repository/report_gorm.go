package repository

import (
	"context"

	"gorm.io/gorm"

	report "github.com/BruksfildServices01/barber-sales/internal/domain/report"
	"github.com/BruksfildServices01/barber-sales/internal/models"
)

type ReportGormRepository struct {
	db *gorm.DB
}

var _ report.Repository = (*ReportGormRepository)(nil)

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// visitScope applies the report filter to a query that exposes visits as alias.
func visitScope(q *gorm.DB, alias string, f report.Filter) *gorm.DB {
	if f.From != "" {
		q = q.Where(alias+".visit_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where(alias+".visit_date <= ?", f.To)
	}
	if f.BarberID != nil {
		q = q.Where(alias+".barber_id = ?", *f.BarberID)
	}
	return q
}

func (r *ReportGormRepository) Overall(ctx context.Context, f report.Filter) (report.Overall, error) {
	var out report.Overall
	q := r.db.WithContext(ctx).
		Table("visits AS v").
		Select("COUNT(v.id) AS total_visits, COALESCE(SUM(v.total_amount), 0) AS total_revenue")

	if err := visitScope(q, "v", f).Scan(&out).Error; err != nil {
		return report.Overall{}, err
	}
	out.TotalRevenue = roundCents(out.TotalRevenue)
	return out, nil
}

func (r *ReportGormRepository) ByBarber(ctx context.Context, f report.Filter) ([]report.BarberTotal, error) {
	// Date bounds belong in the join so barbers without visits keep a row.
	join := "LEFT JOIN visits v ON v.barber_id = b.id"
	var args []any
	if f.From != "" {
		join += " AND v.visit_date >= ?"
		args = append(args, f.From)
	}
	if f.To != "" {
		join += " AND v.visit_date <= ?"
		args = append(args, f.To)
	}

	q := r.db.WithContext(ctx).
		Table("barbers AS b").
		Select("b.id AS barber_id, b.name AS barber_name, COUNT(v.id) AS visit_count, COALESCE(SUM(v.total_amount), 0) AS total_sales").
		Joins(join, args...)
	if f.BarberID != nil {
		q = q.Where("b.id = ?", *f.BarberID)
	}

	var rows []report.BarberTotal
	if err := q.
		Group("b.id, b.name").
		Order("total_sales DESC").
		Order("b.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalSales = roundCents(rows[i].TotalSales)
	}
	return rows, nil
}

func (r *ReportGormRepository) ByService(ctx context.Context, f report.Filter) ([]report.ServiceTotal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.VisitService{}).
		Select("s.id AS service_id, s.name AS service_name, COALESCE(SUM(visit_services.quantity), 0) AS times_rendered, COALESCE(SUM(visit_services.quantity * visit_services.unit_price), 0) AS revenue").
		Joins("JOIN services s ON s.id = visit_services.service_id").
		Joins("JOIN visits v ON v.id = visit_services.visit_id")

	var rows []report.ServiceTotal
	if err := visitScope(q, "v", f).
		Group("s.id, s.name").
		Order("revenue DESC").
		Order("s.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Revenue = roundCents(rows[i].Revenue)
	}
	return rows, nil
}
