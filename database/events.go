package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository handles database operations for economic events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *Database) *EventRepository {
	return &EventRepository{db: db.db}
}

// Insert writes a batch of economic events. Events are insert-only: a
// duplicate (event_name, date) pair is silently dropped, first write wins.
func (r *EventRepository) Insert(events []EconomicEvent) error {
	for _, ev := range events {
		ev.Date = dateOnly(ev.Date)
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_name"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&ev).Error
		if err != nil {
			return fmt.Errorf("Insert event %q: %w", ev.EventName, err)
		}
	}
	return nil
}

// GetByDate retrieves the economic events for one calendar day
func (r *EventRepository) GetByDate(date time.Time) ([]EconomicEvent, error) {
	var events []EconomicEvent
	err := r.db.
		Where("date = ?", dateOnly(date)).
		Order("event_name").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	return events, nil
}
