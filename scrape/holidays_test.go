package scrape

import (
	"strings"
	"testing"
	"time"
)

const holidayHTML = `
<html><body>
<table>
<tr><th>Holiday</th><th>Date</th></tr>
<tr><td>New Year's Day</td><td>January 1, 2026</td></tr>
<tr><td>Independence Day (observed)</td><td>Friday, July 3, 2026*</td></tr>
<tr><td>Thanksgiving Day</td><td>November 26</td></tr>
<tr><td>Broken Row</td><td>sometime soon</td></tr>
<tr><td></td><td>December 25, 2026</td></tr>
</table>
</body></html>`

func TestParseHolidayTable(t *testing.T) {
	holidays, err := ParseHolidayTable(strings.NewReader(holidayHTML), 2026)
	if err != nil {
		t.Fatalf("ParseHolidayTable() error = %v", err)
	}
	if len(holidays) != 3 {
		t.Fatalf("expected 3 holidays, got %d", len(holidays))
	}

	if holidays[0].HolidayName != "New Year's Day" {
		t.Errorf("name = %q", holidays[0].HolidayName)
	}
	want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !holidays[0].HolidayDate.Equal(want) {
		t.Errorf("date = %v, want %v", holidays[0].HolidayDate, want)
	}
	if holidays[0].EarlyClose {
		t.Error("New Year's Day should be a full closure")
	}

	if !holidays[1].EarlyClose {
		t.Error("asterisk date should mark an early close")
	}

	// year-less date picks up the supplied year
	if holidays[2].HolidayDate.Year() != 2026 {
		t.Errorf("Thanksgiving year = %d, want 2026", holidays[2].HolidayDate.Year())
	}
}

func TestParseHolidayTableEmpty(t *testing.T) {
	holidays, err := ParseHolidayTable(strings.NewReader("<html><body></body></html>"), 2026)
	if err != nil {
		t.Fatalf("ParseHolidayTable() error = %v", err)
	}
	if len(holidays) != 0 {
		t.Fatalf("expected no holidays, got %d", len(holidays))
	}
}
