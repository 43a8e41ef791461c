// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/trackjob/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated SQLite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Connect("sqlite", dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
