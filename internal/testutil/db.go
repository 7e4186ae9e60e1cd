package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-sales/internal/db"
)

// NewDB returns a migrated sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "barber.db")
	db, err := dbpkg.Open(config.DB{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = dbpkg.Close(db) })

	if err := dbpkg.Migrate(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// MustCreate inserts rows and fails the test on error.
func MustCreate(t *testing.T, db *gorm.DB, values ...any) {
	t.Helper()
	for _, v := range values {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("create %T: %v", v, err)
		}
	}
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
