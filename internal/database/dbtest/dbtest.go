// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pasar/internal/database"
)

var memSeq atomic.Int64

// OpenMemory opens a private in-memory SQLite database for a test and closes
// it on cleanup.
func OpenMemory(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:pasar_test_%d?mode=memory&cache=shared", memSeq.Add(1))
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: dsn, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
