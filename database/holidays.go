package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HolidayRepository handles database operations for trading holidays
type HolidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(db *Database) *HolidayRepository {
	return &HolidayRepository{db: db.db}
}

// Insert writes a batch of trading holidays, dropping duplicates by date
func (r *HolidayRepository) Insert(holidays []TradingHoliday) error {
	for _, h := range holidays {
		h.HolidayDate = dateOnly(h.HolidayDate)
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holiday_date"}},
			DoNothing: true,
		}).Create(&h).Error
		if err != nil {
			return fmt.Errorf("Insert holiday %q: %w", h.HolidayName, err)
		}
	}
	return nil
}

// GetByDate returns the holiday falling on date, or nil when the market is open
func (r *HolidayRepository) GetByDate(date time.Time) (*TradingHoliday, error) {
	var holiday TradingHoliday
	err := r.db.Where("holiday_date = ?", dateOnly(date)).First(&holiday).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	return &holiday, nil
}

// GetUpcoming returns all holidays on or after date
func (r *HolidayRepository) GetUpcoming(date time.Time) ([]TradingHoliday, error) {
	var holidays []TradingHoliday
	err := r.db.
		Where("holiday_date >= ?", dateOnly(date)).
		Order("holiday_date").
		Find(&holidays).Error
	if err != nil {
		return nil, fmt.Errorf("GetUpcoming: %w", err)
	}
	return holidays, nil
}
