package scrape

import (
	"fmt"
	"log"
	"strings"
	"time"

	"marketbrief/browser"
	"marketbrief/config"
	"marketbrief/database"
	"marketbrief/helpers"
)

// TradingView earnings calendar markup
const (
	earningsURL      = "https://www.tradingview.com/markets/stocks-usa/earnings/"
	earningsReady    = ".tv-data-table"
	earningsRow      = ".tv-data-table__row"
	earningsLoadMore = ".tv-load-more__btn"
	thisWeekTab      = "div[class*='itemContent']:has-text('This Week')"

	fieldName    = "[data-field-key='name']"
	fieldEPS     = "[data-field-key='earnings_per_share_forecast_next_fq']"
	fieldRevenue = "[data-field-key='revenue_forecast_next_fq']"
	fieldTime    = "[data-field-key='earnings_release_next_time']"
	fieldDate    = "[data-field-key='earnings_release_next_date']"
)

// EarningsScraper pulls the week's earnings calendar for tracked tickers
type EarningsScraper struct {
	nav *browser.Navigator
	cfg config.ScrapeConfig
}

// NewEarningsScraper creates an earnings calendar scraper
func NewEarningsScraper(nav *browser.Navigator, cfg config.ScrapeConfig) *EarningsScraper {
	return &EarningsScraper{nav: nav, cfg: cfg}
}

// Scrape loads the calendar, switches to the "This Week" view, expands all
// pages, and extracts one report per tracked ticker. Rows outside the
// tracked set are skipped before any field extraction.
func (s *EarningsScraper) Scrape(tracked map[string]struct{}, now time.Time) ([]database.EarningsReport, error) {
	session, err := s.nav.Navigate(earningsURL, earningsReady, s.cfg.ReadinessTimeout)
	if err != nil {
		return nil, fmt.Errorf("earnings: %w", err)
	}
	defer session.Close()

	s.selectThisWeek(session)

	if _, err := browser.ExpandAll(session, earningsLoadMore, s.cfg.SettleDelay, s.cfg.MaxLoadMore); err != nil {
		return nil, fmt.Errorf("earnings: %w", err)
	}

	rows, err := session.FindAll(earningsRow)
	if err != nil {
		return nil, fmt.Errorf("earnings: list rows: %w", err)
	}
	log.Printf("📊 Earnings calendar: %d rows rendered, %d tickers tracked", len(rows), len(tracked))

	extractor := &Extractor{
		Key: &KeyFilter{
			Name:  "ticker",
			Field: FieldSelector{Selector: fieldName},
			Clean: CleanTicker,
			Allow: tracked,
		},
		Fields: map[string]FieldSelector{
			"eps":     {Selector: fieldEPS},
			"revenue": {Selector: fieldRevenue},
			// Visible text is a truncated relative label; the tooltip holds the session
			"time": {Selector: fieldTime, Attribute: "title", Sentinel: "Unknown"},
			"date": {Selector: fieldDate},
		},
	}

	var reports []database.EarningsReport
	for _, rec := range extractor.Extract(rows) {
		date, err := helpers.ParseReportDate(rec["date"], now)
		if err != nil {
			log.Printf("⚠️  Skipping %s: bad report date %q", rec["ticker"], rec["date"])
			continue
		}

		report := database.EarningsReport{
			Ticker:          rec["ticker"],
			ReportDate:      date,
			EPSEstimate:     optional(stripUnit(rec["eps"])),
			RevenueForecast: optional(stripUnit(rec["revenue"])),
		}
		if session := helpers.SessionOf(rec["time"]); session != helpers.SessionUnknown {
			v := string(session)
			report.Session = &v
		}
		reports = append(reports, report)
		log.Printf("📊 %s reports %s (%s)", report.Ticker, date.Format("2006-01-02"), rec["time"])
	}

	return reports, nil
}

// selectThisWeek switches the calendar to the weekly view. Best effort: the
// default view still yields usable rows if the tab moves.
func (s *EarningsScraper) selectThisWeek(page browser.Page) {
	tab, err := page.Find(thisWeekTab)
	if err != nil || tab == nil {
		log.Printf("⚠️  'This Week' tab not found, scraping default view")
		return
	}
	if err := tab.Click(); err != nil {
		log.Printf("⚠️  Could not click 'This Week' tab: %v", err)
		return
	}
	time.Sleep(s.cfg.SettleDelay)
}

// stripUnit removes the currency unit the site appends to estimate cells
func stripUnit(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, "USD"))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
