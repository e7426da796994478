package database

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test an isolated in-memory store with the real schema
func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	d := &Database{db: db}
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestEarningsUpsertIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewEarningsRepository(db)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	records := []EarningsReport{
		{Ticker: "TGT", ReportDate: date, EPSEstimate: strPtr("2.53"), RevenueForecast: strPtr("31.88B"), Session: strPtr("Before Open")},
		{Ticker: "CRWD", ReportDate: date, EPSEstimate: strPtr("0.86"), Session: strPtr("After Close")},
	}

	if err := repo.Upsert(records); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(records); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByDate(date)
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after double upsert, got %d", len(got))
	}
}

func TestEarningsUpsertOverwritesEstimates(t *testing.T) {
	db := openTestDB(t)
	repo := NewEarningsRepository(db)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first := EarningsReport{Ticker: "TGT", ReportDate: date, EPSEstimate: strPtr("2.40"), Session: strPtr("Before Open")}
	second := EarningsReport{Ticker: "TGT", ReportDate: date, EPSEstimate: strPtr("2.53"), Session: strPtr("Before Open")}

	if err := repo.Upsert([]EarningsReport{first}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert([]EarningsReport{second}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, _ := repo.GetByDate(date)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].EPSEstimate == nil || *got[0].EPSEstimate != "2.53" {
		t.Errorf("expected last-write-wins on eps_estimate, got %v", got[0].EPSEstimate)
	}
}

func TestEarningsSessionKnownOverridesUnknown(t *testing.T) {
	db := openTestDB(t)
	repo := NewEarningsRepository(db)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	// First scrape: the calendar had no reporting time yet
	unknown := EarningsReport{Ticker: "MRVL", ReportDate: date, EPSEstimate: strPtr("0.41")}
	if err := repo.Upsert([]EarningsReport{unknown}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Later scrape fills the session in
	known := EarningsReport{Ticker: "MRVL", ReportDate: date, EPSEstimate: strPtr("0.41"), Session: strPtr("Before Open")}
	if err := repo.Upsert([]EarningsReport{known}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, _ := repo.GetByDate(date)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Session == nil || *got[0].Session != "Before Open" {
		t.Fatalf("expected session to become Before Open, got %v", got[0].Session)
	}

	// And a later unknown never erases it
	if err := repo.Upsert([]EarningsReport{unknown}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ = repo.GetByDate(date)
	if got[0].Session == nil || *got[0].Session != "Before Open" {
		t.Errorf("unknown session must not erase a stored one, got %v", got[0].Session)
	}
}

func TestEventInsertFirstWriteWins(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ev := EconomicEvent{EventName: "CPI Release", Date: date}
	if err := repo.Insert([]EconomicEvent{ev}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert([]EconomicEvent{ev}); err != nil {
		t.Fatalf("duplicate insert must not error: %v", err)
	}

	got, err := repo.GetByDate(date)
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected exactly 1 row after inserting twice, got %d", len(got))
	}
}

func TestHolidayInsertDuplicatesIgnored(t *testing.T) {
	db := openTestDB(t)
	repo := NewHolidayRepository(db)
	date := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	holidays := []TradingHoliday{
		{HolidayDate: date, HolidayName: "Independence Day"},
		{HolidayDate: date, HolidayName: "Independence Day (again)"},
	}
	if err := repo.Insert(holidays); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetByDate(date)
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got == nil {
		t.Fatal("expected a holiday row")
	}
	if got.HolidayName != "Independence Day" {
		t.Errorf("first write must win, got %q", got.HolidayName)
	}

	open, err := repo.GetByDate(date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if open != nil {
		t.Errorf("expected nil for an open day, got %+v", open)
	}
}

func TestSentimentRecaptureOverwrites(t *testing.T) {
	db := openTestDB(t)
	repo := NewSentimentRepository(db)
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	if err := repo.Upsert(SentimentReading{Date: date, Value: 30, Category: "Fear"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(SentimentReading{Date: date, Value: 62, Category: "Greed"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByDate(date)
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got == nil {
		t.Fatal("expected a reading")
	}
	if got.Value != 62 || got.Category != "Greed" {
		t.Errorf("expected same-day recapture to overwrite, got %d/%s", got.Value, got.Category)
	}

	latest, err := repo.GetLatest()
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil || latest.Value != 62 {
		t.Errorf("GetLatest returned %+v", latest)
	}
}

func TestTickerReplaceAndGetAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewTickerRepository(db)

	if err := repo.Replace([]string{"NVDA", "AAPL", "NVDA"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tickers, got %v", got)
	}
	if got[0] != "AAPL" || got[1] != "NVDA" {
		t.Errorf("expected sorted tickers, got %v", got)
	}
}
