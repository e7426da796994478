package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentimentRepository handles database operations for Fear & Greed readings
type SentimentRepository struct {
	db *gorm.DB
}

// NewSentimentRepository creates a new sentiment repository
func NewSentimentRepository(db *Database) *SentimentRepository {
	return &SentimentRepository{db: db.db}
}

// Upsert stores a reading for its capture day. A second capture on the same
// day overwrites value and category.
func (r *SentimentRepository) Upsert(reading SentimentReading) error {
	reading.Date = dateOnly(reading.Date)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "category"}),
	}).Create(&reading).Error
	if err != nil {
		return fmt.Errorf("Upsert sentiment: %w", err)
	}
	return nil
}

// GetLatest returns the most recent reading, or nil when none is stored
func (r *SentimentRepository) GetLatest() (*SentimentReading, error) {
	var reading SentimentReading
	err := r.db.Order("date DESC").First(&reading).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetLatest: %w", err)
	}
	return &reading, nil
}

// GetByDate returns the reading for one calendar day, or nil
func (r *SentimentRepository) GetByDate(date time.Time) (*SentimentReading, error) {
	var reading SentimentReading
	err := r.db.Where("date = ?", dateOnly(date)).First(&reading).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	return &reading, nil
}
