// Package database provides the PostgreSQL persistence gateway for the
// marketbrief bot: GORM connection management, entity models with natural-key
// uniqueness, and per-entity repositories with idempotent upsert semantics.
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the GORM database connection
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM instance for direct access when needed
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes the database connection using GORM
func Connect(host, port, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	// Modest pool: jobs run one at a time, a handful of connections is plenty
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return &Database{db: db}, nil
}

// Migrate creates or updates all entity tables. Safe to run on every start.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(
		&EarningsReport{},
		&EconomicEvent{},
		&TradingHoliday{},
		&SentimentReading{},
		&SP500Ticker{},
	); err != nil {
		return fmt.Errorf("Migrate: %w", err)
	}
	log.Println("✅ Database schema up to date")
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	log.Println("📡 Closing database connection...")
	return sqlDB.Close()
}
