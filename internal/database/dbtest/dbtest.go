// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/dangerclosesec/audiencelab/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated sqlite database that lives for the duration of t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{Environment: config.EnvProduction}
	gormCfg := database.GormConfig(cfg)
	gormCfg.Logger = logger.Default.LogMode(logger.Silent)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), gormCfg)
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrating sqlite: %v", err)
	}
	return db
}
