// Package dbtest opens a throwaway sqlite database for repository and handler tests.
package dbtest

import (
	"testing"

	"restaurant/internal/infra/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory database closed at test cleanup.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := db.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// every :memory: connection is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}
