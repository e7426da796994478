package scrape

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marketbrief/database"
)

// defaultHolidayURL serves a static table of market holidays, one row per
// date. No JS rendering involved, so a plain GET plus goquery is enough here.
const defaultHolidayURL = "https://www.tradinghours.com/markets/nyse/holidays"

// HolidayFetcher scrapes the exchange holiday calendar
type HolidayFetcher struct {
	url    string
	client *http.Client
}

// NewHolidayFetcher creates a holiday fetcher
func NewHolidayFetcher() *HolidayFetcher {
	return &HolidayFetcher{
		url:    defaultHolidayURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads and parses the holiday table for the year of now
func (f *HolidayFetcher) Fetch(now time.Time) ([]database.TradingHoliday, error) {
	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holidays: HTTP %d", resp.StatusCode)
	}

	return ParseHolidayTable(resp.Body, now.Year())
}

var holidayDateLayouts = []string{
	"January 2, 2006",
	"Monday, January 2, 2006",
	"January 2",
	"Monday, January 2",
}

// ParseHolidayTable extracts holidays from an HTML table whose rows carry a
// holiday name cell and a date cell. A trailing asterisk or an explicit
// early-close note on the date marks a shortened session. Rows that fail to
// parse are logged and skipped, they never fail the batch.
func ParseHolidayTable(r io.Reader, year int) ([]database.TradingHoliday, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("holidays: parse: %w", err)
	}

	var holidays []database.TradingHoliday
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return // header row
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		dateText := strings.TrimSpace(cells.Eq(1).Text())
		if name == "" || dateText == "" {
			return
		}

		early := strings.HasSuffix(dateText, "*") || strings.Contains(strings.ToLower(dateText), "early close")
		dateText = strings.TrimSpace(strings.TrimSuffix(dateText, "*"))

		date, ok := parseHolidayDate(dateText, year)
		if !ok {
			log.Printf("⚠️  Skipping holiday row %q: unparseable date %q", name, dateText)
			return
		}

		holidays = append(holidays, database.TradingHoliday{
			HolidayDate: date,
			HolidayName: name,
			EarlyClose:  early,
		})
	})

	return holidays, nil
}

func parseHolidayDate(s string, year int) (time.Time, bool) {
	for _, layout := range holidayDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, true
	}
	return time.Time{}, false
}
