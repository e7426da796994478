package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarningsRepository handles database operations for earnings reports
type EarningsRepository struct {
	db *gorm.DB
}

// NewEarningsRepository creates a new earnings repository
func NewEarningsRepository(db *Database) *EarningsRepository {
	return &EarningsRepository{db: db.db}
}

// Upsert writes a batch of earnings reports. Each record is applied
// independently against the (ticker, report_date) key: estimates are
// last-write-wins, the session only moves from NULL to a known value.
// A calendar row that loses its reporting time later never erases one we
// already stored. The first failure is returned; records upserted before it
// stay applied.
func (r *EarningsRepository) Upsert(records []EarningsReport) error {
	for _, rec := range records {
		rec.ReportDate = dateOnly(rec.ReportDate)
		err := r.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ticker"}, {Name: "report_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"eps_estimate":     gorm.Expr("excluded.eps_estimate"),
				"revenue_forecast": gorm.Expr("excluded.revenue_forecast"),
				"session":          gorm.Expr("COALESCE(excluded.session, session)"),
			}),
		}).Create(&rec).Error
		if err != nil {
			return fmt.Errorf("Upsert earnings %s: %w", rec.Ticker, err)
		}
	}
	return nil
}

// GetByDate retrieves the earnings reports for one calendar day
func (r *EarningsRepository) GetByDate(date time.Time) ([]EarningsReport, error) {
	var reports []EarningsReport
	err := r.db.
		Where("report_date = ?", dateOnly(date)).
		Order("ticker").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	return reports, nil
}

// dateOnly strips the time-of-day so date-keyed rows compare cleanly
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
