// Package testdb hands out migrated in-memory databases to tests
package testdb

import (
	"bitwise74/medflow-api/db"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh, fully migrated sqlite database private to t
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	d, err := db.Open(sqlite.Open(dsn), logger.Discard)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}

	// A single connection keeps the in-memory database alive and
	// serializes writers the way a real server would see them
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return d
}
