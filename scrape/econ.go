package scrape

import (
	"fmt"
	"log"
	"time"

	"marketbrief/browser"
	"marketbrief/config"
	"marketbrief/database"
)

// Timeframe selects which slice of the economic calendar to scrape
type Timeframe string

const (
	TimeframeTomorrow Timeframe = "Tomorrow"
	TimeframeThisWeek Timeframe = "This Week"
)

// TradingView economic calendar markup
const (
	econURL   = "https://www.tradingview.com/symbols/USDCAD/economic-calendar/?exchange=FX_IDC"
	econReady = "div[data-name*='economic-calendar-item']"
	econRow   = "div[data-name*='economic-calendar-item']"
	econTitle = "span[class*='titleText']"

	econImportanceButton = "button:has(span[class*='importance'])"
)

// EconScraper pulls high-importance economic events from the calendar
type EconScraper struct {
	nav *browser.Navigator
	cfg config.ScrapeConfig
}

// NewEconScraper creates an economic calendar scraper
func NewEconScraper(nav *browser.Navigator, cfg config.ScrapeConfig) *EconScraper {
	return &EconScraper{nav: nav, cfg: cfg}
}

// Scrape opens the calendar, narrows it to high importance and the requested
// timeframe, and extracts the event names. The filter clicks are best effort:
// a moved button degrades the result set, it does not abort the job.
func (s *EconScraper) Scrape(timeframe Timeframe, now time.Time) ([]database.EconomicEvent, error) {
	session, err := s.nav.Navigate(econURL, econReady, s.cfg.ReadinessTimeout)
	if err != nil {
		return nil, fmt.Errorf("econ: %w", err)
	}
	defer session.Close()

	s.clickImportance(session)
	s.selectTimeframe(session, timeframe)

	rows, err := session.FindAll(econRow)
	if err != nil {
		return nil, fmt.Errorf("econ: list rows: %w", err)
	}
	if len(rows) == 0 {
		log.Println("⚠️  No economic calendar rows found, skipping")
		return nil, nil
	}

	extractor := &Extractor{
		Fields: map[string]FieldSelector{
			"event": {Selector: econTitle},
		},
	}

	var events []database.EconomicEvent
	for _, rec := range extractor.Extract(rows) {
		events = append(events, database.EconomicEvent{
			EventName: rec["event"],
			Date:      now,
		})
	}

	log.Printf("📊 Economic calendar (%s): %d events", timeframe, len(events))
	return events, nil
}

func (s *EconScraper) clickImportance(page browser.Page) {
	button, err := page.Find(econImportanceButton)
	if err != nil || button == nil {
		log.Println("⚠️  Importance filter button not found")
		return
	}
	if err := button.Click(); err != nil {
		log.Printf("⚠️  Could not click importance filter: %v", err)
		return
	}
	time.Sleep(s.cfg.SettleDelay)
}

func (s *EconScraper) selectTimeframe(page browser.Page, timeframe Timeframe) {
	button, err := page.Find(fmt.Sprintf("button:has-text('%s')", timeframe))
	if err != nil || button == nil {
		log.Printf("⚠️  Timeframe button %q not found, keeping default view", timeframe)
		return
	}
	if err := button.Click(); err != nil {
		log.Printf("⚠️  Could not select timeframe %q: %v", timeframe, err)
		return
	}
	time.Sleep(s.cfg.SettleDelay)
}
