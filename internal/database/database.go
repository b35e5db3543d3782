// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/dangerclosesec/audiencelab/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DSN builds the postgres connection string from configuration.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)
}

// GormConfig is shared by every dialector so tests behave like production.
func GormConfig(cfg *config.Config) *gorm.Config {
	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Warn
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open connects to postgres and configures the connection pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), GormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table and loads the reference lists.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	if err := Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding reference data: %w", err)
	}
	return nil
}

var (
	industries = []string{
		"Agriculture", "Automotive", "Construction", "Consulting", "Education",
		"Energy", "Entertainment", "Finance", "Food & Beverage", "Government",
		"Healthcare", "Hospitality", "Insurance", "Legal", "Logistics",
		"Manufacturing", "Marketing", "Media", "Non-profit", "Real Estate",
		"Retail", "Technology", "Telecommunications", "Travel",
	}
	ageRanges = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
)

// Seed inserts the reference lists, leaving existing rows untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	rows := make([]model.Industry, 0, len(industries))
	for _, name := range industries {
		rows = append(rows, model.Industry{Industry: name})
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("seeding industries: %w", err)
	}

	ranges := make([]model.AgeRange, 0, len(ageRanges))
	for _, r := range ageRanges {
		ranges = append(ranges, model.AgeRange{AgeRange: r})
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ranges).Error; err != nil {
		return fmt.Errorf("seeding age ranges: %w", err)
	}
	return nil
}
