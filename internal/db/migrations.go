package db

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/models"
)

// step is one schema change. Every variant checks the live schema before
// acting, so a step recorded as missing (or a partially migrated database)
// is safe to run again.
type step interface {
	stepID() string
	apply(db *gorm.DB) error
}

type createTable struct {
	id    string
	model any
}

type addColumn struct {
	id     string
	model  any
	column string
}

type createIndex struct {
	id    string
	model any
	index string
}

// rawSQL runs only on the listed dialects.
type rawSQL struct {
	id       string
	dialects []string
	table    string
	index    string
	sql      string
}

func (s createTable) stepID() string { return s.id }
func (s addColumn) stepID() string   { return s.id }
func (s createIndex) stepID() string { return s.id }
func (s rawSQL) stepID() string      { return s.id }

func (s createTable) apply(db *gorm.DB) error {
	if db.Migrator().HasTable(s.model) {
		return nil
	}
	return db.Migrator().CreateTable(s.model)
}

func (s addColumn) apply(db *gorm.DB) error {
	if db.Migrator().HasColumn(s.model, s.column) {
		return nil
	}
	return db.Migrator().AddColumn(s.model, s.column)
}

func (s createIndex) apply(db *gorm.DB) error {
	if db.Migrator().HasIndex(s.model, s.index) {
		return nil
	}
	return db.Migrator().CreateIndex(s.model, s.index)
}

func (s rawSQL) apply(db *gorm.DB) error {
	if !slices.Contains(s.dialects, db.Dialector.Name()) {
		return nil
	}
	if s.index != "" && db.Migrator().HasIndex(s.table, s.index) {
		return nil
	}
	return db.Exec(s.sql).Error
}

// steps is append-only: never reorder or edit an entry that has shipped.
var steps = []step{
	createTable{id: "0001_create_barbers", model: &models.Barber{}},
	createTable{id: "0002_create_users", model: &models.User{}},
	createTable{id: "0003_create_services", model: &models.Service{}},
	createTable{id: "0004_create_customers", model: &models.Customer{}},
	createTable{id: "0005_create_visits", model: &models.Visit{}},
	createTable{id: "0006_create_visit_services", model: &models.VisitService{}},
	createTable{id: "0007_create_password_reset_requests", model: &models.PasswordResetRequest{}},
	addColumn{id: "0008_users_requires_password_change", model: &models.User{}, column: "RequiresPasswordChange"},
	addColumn{id: "0009_visits_payment_method", model: &models.Visit{}, column: "PaymentMethod"},
	addColumn{id: "0010_visits_momo_reference", model: &models.Visit{}, column: "MomoReference"},
	createIndex{id: "0011_reset_requests_status_index", model: &models.PasswordResetRequest{}, index: "idx_reset_requests_status"},
	rawSQL{
		id:       "0012_reset_requests_one_pending",
		dialects: []string{"postgres", "sqlite"},
		table:    "password_reset_requests",
		index:    "idx_reset_requests_one_pending",
		sql:      "CREATE UNIQUE INDEX idx_reset_requests_one_pending ON password_reset_requests (user_id) WHERE status = 'pending'",
	},
	createTable{id: "0013_create_audit_logs", model: &models.AuditLog{}},
}

// parseOrder lists models whose parsing registers has-many constraints on the
// child tables; they must be in the schema cache before any table is created.
var parseOrder = []any{
	&models.Barber{},
	&models.User{},
	&models.Service{},
	&models.Customer{},
	&models.Visit{},
	&models.VisitService{},
	&models.PasswordResetRequest{},
	&models.AuditLog{},
}

// Migrate applies every step not yet recorded in schema_migrations, in order.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	db = db.WithContext(ctx)

	if err := db.Migrator().AutoMigrate(&models.SchemaMigration{}); err != nil {
		return fmt.Errorf("migrate schema_migrations: %w", err)
	}

	for _, m := range parseOrder {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("parse %T: %w", m, err)
		}
	}

	var applied []string
	if err := db.Model(&models.SchemaMigration{}).Pluck("id", &applied).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	for _, s := range steps {
		if slices.Contains(applied, s.stepID()) {
			continue
		}
		if err := s.apply(db); err != nil {
			return fmt.Errorf("migration %s: %w", s.stepID(), err)
		}
		if err := db.Create(&models.SchemaMigration{ID: s.stepID(), AppliedAt: time.Now().UTC()}).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", s.stepID(), err)
		}
		log.Info("migration applied", zap.String("id", s.stepID()))
	}
	return nil
}
