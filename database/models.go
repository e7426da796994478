package database

import "time"

// EarningsReport is one upcoming earnings release scraped from the calendar.
//
// Natural key: (ticker, report_date). A company reports once per date; the
// session column merges on conflict rather than splitting the key, so a row
// first seen with an unknown session is completed in place once the site
// publishes the reporting time (see EarningsRepository.Upsert).
//
// Session is NULL when the calendar did not state a reporting time.
// EPSEstimate and RevenueForecast keep the site's abbreviated strings
// ("2.53", "35.08B", "N/A"). They feed tweets verbatim, never arithmetic.
type EarningsReport struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Ticker          string    `gorm:"size:12;not null;uniqueIndex:idx_earnings_key,priority:1" json:"ticker"`
	ReportDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_earnings_key,priority:2" json:"report_date"`
	EPSEstimate     *string   `gorm:"size:32" json:"eps_estimate,omitempty"`
	RevenueForecast *string   `gorm:"size:32" json:"revenue_forecast,omitempty"`
	Session         *string   `gorm:"size:20" json:"session,omitempty"` // "Before Open", "After Close", NULL when unknown
}

// TableName specifies the table name for EarningsReport
func (EarningsReport) TableName() string {
	return "earnings_reports"
}

// EconomicEvent is one calendar entry (CPI release, FOMC, payrolls).
// Natural key: (event_name, date). Insert-only: the first write wins and
// duplicates are silently dropped.
type EconomicEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventName string    `gorm:"size:200;not null;uniqueIndex:idx_event_key,priority:1" json:"event_name"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_event_key,priority:2" json:"date"`
}

// TableName specifies the table name for EconomicEvent
func (EconomicEvent) TableName() string {
	return "economic_events"
}

// TradingHoliday is a market closure (or early close) date. Insert-only,
// keyed by date.
type TradingHoliday struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HolidayDate time.Time `gorm:"type:date;not null;uniqueIndex" json:"holiday_date"`
	HolidayName string    `gorm:"size:100;not null" json:"holiday_name"`
	EarlyClose  bool      `gorm:"default:false" json:"early_close"`
}

// TableName specifies the table name for TradingHoliday
func (TradingHoliday) TableName() string {
	return "trading_holidays"
}

// SentimentReading is one Fear & Greed Index capture. One row per calendar
// day; a re-capture on the same day overwrites value and category.
type SentimentReading struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Value    int       `gorm:"not null" json:"value"` // 0-100
	Category string    `gorm:"size:20;not null" json:"category"`
}

// TableName specifies the table name for SentimentReading
func (SentimentReading) TableName() string {
	return "fear_greed_index"
}

// SP500Ticker is one member of the known-ticker set used to partition
// movers and to allow-list earnings rows
type SP500Ticker struct {
	Ticker string `gorm:"size:12;primaryKey" json:"ticker"`
}

// TableName specifies the table name for SP500Ticker
func (SP500Ticker) TableName() string {
	return "sp500_tickers"
}
