package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TickerRepository handles database operations for the known-ticker set
type TickerRepository struct {
	db *gorm.DB
}

// NewTickerRepository creates a new ticker repository
func NewTickerRepository(db *Database) *TickerRepository {
	return &TickerRepository{db: db.db}
}

// GetAll returns every ticker in the sp500_tickers table
func (r *TickerRepository) GetAll() ([]string, error) {
	var tickers []string
	err := r.db.Model(&SP500Ticker{}).Order("ticker").Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return tickers, nil
}

// Replace seeds the known-ticker set, skipping tickers already present
func (r *TickerRepository) Replace(tickers []string) error {
	for _, t := range tickers {
		err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&SP500Ticker{Ticker: t}).Error
		if err != nil {
			return fmt.Errorf("Replace %s: %w", t, err)
		}
	}
	return nil
}
