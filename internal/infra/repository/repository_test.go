package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/domain"
	"github.com/BruksfildServices01/barber-sales/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-sales/internal/domain/passwordreset"
	"github.com/BruksfildServices01/barber-sales/internal/domain/report"
	visitdomain "github.com/BruksfildServices01/barber-sales/internal/domain/visit"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	barberA  *models.Barber
	barberB  *models.Barber
	customer *models.Customer
	cut      *models.Service
	shave    *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:       db,
		barberA:  &models.Barber{Name: "Alpha"},
		barberB:  &models.Barber{Name: "Bravo"},
		customer: &models.Customer{Name: "Kwame Mensah", Phone: "0244000111"},
		cut:      &models.Service{Name: "Cut", Price: 20},
		shave:    &models.Service{Name: "Shave", Price: 15},
	}
	testutil.MustCreate(t, db, f.barberA, f.barberB, f.customer, f.cut, f.shave)
	return f
}

func (f *fixture) visit(t *testing.T, barber *models.Barber, date string, lines ...models.VisitService) *models.Visit {
	t.Helper()
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	v := &models.Visit{
		BarberID:      barber.ID,
		CustomerID:    f.customer.ID,
		VisitDate:     date,
		TotalAmount:   total,
		PaymentMethod: models.PaymentCash,
		Services:      lines,
	}
	if err := NewVisitGormRepository(f.db).Create(context.Background(), v); err != nil {
		t.Fatalf("create visit: %v", err)
	}
	return v
}

func TestVisitCreateAndList(t *testing.T) {
	f := newFixture(t)
	repo := NewVisitGormRepository(f.db)
	ctx := context.Background()

	f.visit(t, f.barberA, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 2, UnitPrice: 20})
	f.visit(t, f.barberA, "2024-03-05", models.VisitService{ServiceID: f.shave.ID, Quantity: 1, UnitPrice: 15})
	f.visit(t, f.barberB, "2024-03-03", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 18})

	all, err := repo.List(ctx, visitdomain.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].VisitDate != "2024-03-05" || all[2].VisitDate != "2024-03-01" {
		t.Fatalf("unexpected order %+v", all)
	}
	if all[2].Barber == nil || all[2].Customer == nil || all[2].Services[0].Service.Name != "Cut" {
		t.Fatalf("associations not loaded: %+v", all[2])
	}

	id := f.barberA.ID
	scoped, err := repo.List(ctx, visitdomain.Filter{BarberID: &id, From: "2024-03-02", To: "2024-03-31"})
	if err != nil {
		t.Fatalf("scoped list: %v", err)
	}
	if len(scoped) != 1 || scoped[0].VisitDate != "2024-03-05" {
		t.Fatalf("scoped = %+v", scoped)
	}

	missing, err := repo.MissingServices(ctx, []uint{f.cut.ID, 999})
	if err != nil || len(missing) != 1 || missing[0] != 999 {
		t.Fatalf("missing = %v, %v", missing, err)
	}
}

func TestVisitCreateRollsBackOnBadLine(t *testing.T) {
	f := newFixture(t)
	v := &models.Visit{
		BarberID: f.barberA.ID, CustomerID: f.customer.ID, VisitDate: "2024-03-01",
		TotalAmount: 20, PaymentMethod: models.PaymentCash,
		Services: []models.VisitService{
			{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20},
			{ServiceID: 4242, Quantity: 1, UnitPrice: 0},
		},
	}
	if err := NewVisitGormRepository(f.db).Create(context.Background(), v); err == nil {
		t.Fatal("expected foreign key failure")
	}
	if n := testutil.Count(t, f.db, &models.Visit{}, ""); n != 0 {
		t.Fatalf("visit row survived rollback: %d", n)
	}
	if n := testutil.Count(t, f.db, &models.VisitService{}, ""); n != 0 {
		t.Fatalf("line rows survived rollback: %d", n)
	}
}

func TestDeleteBarberCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := &models.User{Username: "alpha", PasswordHash: "x", Role: models.RoleBarber, BarberID: &f.barberA.ID}
	other := &models.User{Username: "bravo", PasswordHash: "x", Role: models.RoleBarber, BarberID: &f.barberB.ID}
	testutil.MustCreate(t, f.db, user, other)
	testutil.MustCreate(t, f.db, passwordreset.New(user.ID, time.Now()))

	f.visit(t, f.barberA, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20})
	kept := f.visit(t, f.barberB, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20})

	repo := NewCatalogGormRepository(f.db)
	if err := repo.DeleteBarber(ctx, f.barberA.ID); err != nil {
		t.Fatalf("delete barber: %v", err)
	}

	if n := testutil.Count(t, f.db, &models.Visit{}, "barber_id = ?", f.barberA.ID); n != 0 {
		t.Fatalf("visits left: %d", n)
	}
	if n := testutil.Count(t, f.db, &models.VisitService{}, "visit_id <> ?", kept.ID); n != 0 {
		t.Fatalf("orphan lines: %d", n)
	}
	if n := testutil.Count(t, f.db, &models.User{}, "barber_id = ?", f.barberA.ID); n != 0 {
		t.Fatalf("users left: %d", n)
	}
	if n := testutil.Count(t, f.db, &models.PasswordResetRequest{}, ""); n != 0 {
		t.Fatalf("reset requests left: %d", n)
	}
	if n := testutil.Count(t, f.db, &models.Visit{}, ""); n != 1 {
		t.Fatalf("other barber's visit affected: %d", n)
	}

	if err := repo.DeleteBarber(ctx, f.barberA.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestDeleteServiceInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCatalogGormRepository(f.db)

	f.visit(t, f.barberA, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20})

	if err := repo.DeleteService(ctx, f.cut.ID); !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("delete referenced service = %v", err)
	}
	if n := testutil.Count(t, f.db, &models.Service{}, "id = ?", f.cut.ID); n != 1 {
		t.Fatal("referenced service removed")
	}
	if err := repo.DeleteService(ctx, f.shave.ID); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
	if err := repo.DeleteService(ctx, f.shave.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete missing = %v", err)
	}
}

func TestUpdateServiceKeepsHistoricalPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.visit(t, f.barberA, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20})

	price := 30.0
	s, err := NewCatalogGormRepository(f.db).UpdateService(ctx, f.cut.ID, catalog.ServicePatch{Price: &price})
	if err != nil || s.Price != 30 {
		t.Fatalf("update = %+v, %v", s, err)
	}

	var line models.VisitService
	if err := f.db.Where("visit_id = ?", v.ID).First(&line).Error; err != nil {
		t.Fatalf("load line: %v", err)
	}
	if line.UnitPrice != 20 {
		t.Fatalf("historical price changed to %v", line.UnitPrice)
	}
}

func TestPasswordResetOnePendingPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewPasswordResetGormRepository(f.db)

	user := &models.User{Username: "alpha", PasswordHash: "x", Role: models.RoleBarber}
	testutil.MustCreate(t, f.db, user)

	if err := repo.Create(ctx, passwordreset.New(user.ID, time.Now())); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := repo.Create(ctx, passwordreset.New(user.ID, time.Now())); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("second pending request = %v", err)
	}
}

func TestPasswordResetReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewPasswordResetGormRepository(f.db)

	admin := &models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin}
	user := &models.User{Username: "alpha", PasswordHash: "old", Role: models.RoleBarber, BarberID: &f.barberA.ID}
	testutil.MustCreate(t, f.db, admin, user)

	req := passwordreset.New(user.ID, time.Now())
	testutil.MustCreate(t, f.db, req)

	pending, err := repo.ListPending(ctx)
	if err != nil || len(pending) != 1 || pending[0].User.Barber.Name != "Alpha" {
		t.Fatalf("pending = %+v, %v", pending, err)
	}

	approve := func(r *models.PasswordResetRequest) error {
		return passwordreset.Approve(r, admin.ID, time.Now())
	}
	got, err := repo.Review(ctx, req.ID, approve, "new-hash")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.Status != string(passwordreset.StatusApproved) {
		t.Fatalf("status = %s", got.Status)
	}

	var reloaded models.User
	f.db.First(&reloaded, user.ID)
	if reloaded.PasswordHash != "new-hash" || !reloaded.RequiresPasswordChange {
		t.Fatalf("user not reset: %+v", reloaded)
	}

	if _, err := repo.Review(ctx, req.ID, approve, "other"); !errors.Is(err, passwordreset.ErrNotReviewable) {
		t.Fatalf("second approve = %v", err)
	}
	if _, err := repo.Review(ctx, 999, approve, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing request = %v", err)
	}

	f.db.First(&reloaded, user.ID)
	if reloaded.PasswordHash != "new-hash" {
		t.Fatal("second approve changed the password")
	}
}

func TestReportByBarberIncludesIdleBarbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewReportGormRepository(f.db)

	f.visit(t, f.barberA, "2024-03-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 2, UnitPrice: 20})
	f.visit(t, f.barberA, "2024-03-02",
		models.VisitService{ServiceID: f.shave.ID, Quantity: 1, UnitPrice: 15},
		models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 0.1},
	)
	f.visit(t, f.barberB, "2024-04-01", models.VisitService{ServiceID: f.cut.ID, Quantity: 1, UnitPrice: 20})

	filter := report.Filter{From: "2024-03-01", To: "2024-03-31"}

	rows, err := repo.ByBarber(ctx, filter)
	if err != nil {
		t.Fatalf("by barber: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].BarberName != "Alpha" || rows[0].VisitCount != 2 || rows[0].TotalSales != 55.1 {
		t.Fatalf("alpha row = %+v", rows[0])
	}
	if rows[1].BarberName != "Bravo" || rows[1].VisitCount != 0 || rows[1].TotalSales != 0 {
		t.Fatalf("idle barber row = %+v", rows[1])
	}

	overall, err := repo.Overall(ctx, filter)
	if err != nil || overall.TotalVisits != 2 || overall.TotalRevenue != 55.1 {
		t.Fatalf("overall = %+v, %v", overall, err)
	}

	services, err := repo.ByService(ctx, filter)
	if err != nil {
		t.Fatalf("by service: %v", err)
	}
	if len(services) != 2 || services[0].ServiceName != "Cut" || services[0].TimesRendered != 3 || services[0].Revenue != 40.1 {
		t.Fatalf("services = %+v", services)
	}

	id := f.barberB.ID
	scoped, err := repo.ByBarber(ctx, report.Filter{BarberID: &id})
	if err != nil || len(scoped) != 1 || scoped[0].TotalSales != 20 {
		t.Fatalf("scoped = %+v, %v", scoped, err)
	}
}

func TestCustomerSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCustomerGormRepository(f.db)

	testutil.MustCreate(t, f.db,
		&models.Customer{Name: "Ama 100%", Phone: "0200000001"},
		&models.Customer{Name: "Abena", Phone: ""},
	)

	got, err := repo.Search(ctx, "KWAME", 50)
	if err != nil || len(got) != 1 {
		t.Fatalf("by name = %+v, %v", got, err)
	}
	got, _ = repo.Search(ctx, "000111", 50)
	if len(got) != 1 || got[0].Name != "Kwame Mensah" {
		t.Fatalf("by phone = %+v", got)
	}
	got, _ = repo.Search(ctx, "%", 50)
	if len(got) != 1 || got[0].Name != "Ama 100%" {
		t.Fatalf("wildcard not escaped: %+v", got)
	}
	got, _ = repo.Search(ctx, "", 2)
	if len(got) != 2 || got[0].Name != "Abena" {
		t.Fatalf("listing = %+v", got)
	}

	found, err := repo.FindExact(ctx, "kwame mensah", "0244000111")
	if err != nil || found.ID != f.customer.ID {
		t.Fatalf("find exact = %+v, %v", found, err)
	}
	if _, err := repo.FindExact(ctx, "kwame mensah", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("phone mismatch = %v", err)
	}
}

func TestAccountRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewAccountGormRepository(f.db)

	u := &models.User{Username: "alpha", PasswordHash: "x", Role: models.RoleBarber, BarberID: &f.barberA.ID}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &models.User{Username: "alpha", PasswordHash: "y", Role: models.RoleBarber}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("duplicate username = %v", err)
	}

	testutil.MustCreate(t, f.db, passwordreset.New(u.ID, time.Now()))
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := testutil.Count(t, f.db, &models.PasswordResetRequest{}, ""); n != 0 {
		t.Fatalf("requests left: %d", n)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted = %v", err)
	}
	if err := repo.SetPassword(ctx, u.ID, "h", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("set password on missing = %v", err)
	}
}
