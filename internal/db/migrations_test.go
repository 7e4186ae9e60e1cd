package db_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	dbpkg "github.com/BruksfildServices01/barber-sales/internal/db"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	before := testutil.Count(t, db, &models.SchemaMigration{}, "")
	if before == 0 {
		t.Fatal("expected recorded migrations")
	}

	if err := dbpkg.Migrate(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if after := testutil.Count(t, db, &models.SchemaMigration{}, ""); after != before {
		t.Fatalf("migrations recorded twice: %d -> %d", before, after)
	}

	for _, table := range []string{"users", "barbers", "services", "customers", "visits", "visit_services", "password_reset_requests", "audit_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	if !db.Migrator().HasIndex("password_reset_requests", "idx_reset_requests_one_pending") {
		t.Fatal("missing one-pending index")
	}
}

func TestMigrateRepairsMissingStepRecord(t *testing.T) {
	db := testutil.NewDB(t)

	if err := db.Where("id = ?", "0009_visits_payment_method").Delete(&models.SchemaMigration{}).Error; err != nil {
		t.Fatalf("delete record: %v", err)
	}
	if err := dbpkg.Migrate(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if n := testutil.Count(t, db, &models.SchemaMigration{}, "id = ?", "0009_visits_payment_method"); n != 1 {
		t.Fatalf("step not re-recorded, count=%d", n)
	}
}

func TestVisitLinesCascadeWithVisit(t *testing.T) {
	db := testutil.NewDB(t)

	barber := &models.Barber{Name: "A"}
	customer := &models.Customer{Name: "Kofi"}
	service := &models.Service{Name: "Cut", Price: 20}
	testutil.MustCreate(t, db, barber, customer, service)

	visit := &models.Visit{
		BarberID: barber.ID, CustomerID: customer.ID, VisitDate: "2024-03-01",
		TotalAmount: 20, PaymentMethod: models.PaymentCash,
		Services: []models.VisitService{{ServiceID: service.ID, Quantity: 1, UnitPrice: 20}},
	}
	testutil.MustCreate(t, db, visit)

	if err := db.Delete(&models.Visit{}, visit.ID).Error; err != nil {
		t.Fatalf("delete visit: %v", err)
	}
	if n := testutil.Count(t, db, &models.VisitService{}, ""); n != 0 {
		t.Fatalf("expected cascade, %d lines left", n)
	}
}

func TestSeedServicesOnlyOnEmptyCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	n, err := dbpkg.SeedServices(ctx, db)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(dbpkg.SampleServices) {
		t.Fatalf("seeded %d, want %d", n, len(dbpkg.SampleServices))
	}

	n, err = dbpkg.SeedServices(ctx, db)
	if err != nil || n != 0 {
		t.Fatalf("second seed = %d, %v", n, err)
	}
}

func TestClearBarbersKeepsAdminAndCatalog(t *testing.T) {
	db := testutil.NewDB(t)

	barber := &models.Barber{Name: "A"}
	customer := &models.Customer{Name: "Ama"}
	service := &models.Service{Name: "Cut", Price: 20}
	testutil.MustCreate(t, db, barber, customer, service)

	admin := &models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin}
	user := &models.User{Username: "a", PasswordHash: "x", Role: models.RoleBarber, BarberID: &barber.ID}
	testutil.MustCreate(t, db, admin, user)
	testutil.MustCreate(t, db, &models.Visit{
		BarberID: barber.ID, CustomerID: customer.ID, VisitDate: "2024-03-01",
		TotalAmount: 20, PaymentMethod: models.PaymentCash,
		Services: []models.VisitService{{ServiceID: service.ID, Quantity: 1, UnitPrice: 20}},
	})

	if err := dbpkg.ClearBarbers(context.Background(), db); err != nil {
		t.Fatalf("clear: %v", err)
	}

	checks := map[string]int64{
		"barbers":  testutil.Count(t, db, &models.Barber{}, ""),
		"visits":   testutil.Count(t, db, &models.Visit{}, ""),
		"lines":    testutil.Count(t, db, &models.VisitService{}, ""),
		"barberUs": testutil.Count(t, db, &models.User{}, "role = ?", models.RoleBarber),
	}
	for name, n := range checks {
		if n != 0 {
			t.Fatalf("%s left: %d", name, n)
		}
	}
	if testutil.Count(t, db, &models.User{}, "role = ?", models.RoleAdmin) != 1 {
		t.Fatal("admin removed")
	}
	if testutil.Count(t, db, &models.Service{}, "") != 1 || testutil.Count(t, db, &models.Customer{}, "") != 1 {
		t.Fatal("catalog or customers removed")
	}
}
