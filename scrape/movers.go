package scrape

import (
	"fmt"
	"log"

	"marketbrief/browser"
	"marketbrief/config"
	"marketbrief/helpers"
)

// TradingView market-movers pages (pre-market, 52wk, ATH) share this markup
const (
	moversReady    = ".tv-category-content"
	moversRow      = "div.tv-category-content table tbody tr"
	moversLoadMore = ".tv-load-more__btn"

	moverTicker = "td:nth-child(1) span"
	moverChange = "td:nth-child(2) span"
)

// MoversPage describes one movers listing to scrape. The market-cap column
// position differs between the pre-market pages and the gap page.
type MoversPage struct {
	URL          string
	CapColumn    int     // 1-based table column holding market cap
	MinMarketCap float64 // dollars
}

// MoversScraper extracts {ticker, change, market cap} rows from a movers page
type MoversScraper struct {
	nav *browser.Navigator
	cfg config.ScrapeConfig
}

// NewMoversScraper creates a movers scraper
func NewMoversScraper(nav *browser.Navigator, cfg config.ScrapeConfig) *MoversScraper {
	return &MoversScraper{nav: nav, cfg: cfg}
}

// Scrape returns every mover on the fully-expanded page with its market cap
// normalized to dollars. Threshold filtering and index/other sampling happen
// downstream in FilterAndSample.
func (s *MoversScraper) Scrape(page MoversPage) ([]Mover, error) {
	session, err := s.nav.Navigate(page.URL, moversReady, s.cfg.ReadinessTimeout)
	if err != nil {
		return nil, fmt.Errorf("movers: %w", err)
	}
	defer session.Close()

	if _, err := browser.ExpandAll(session, moversLoadMore, s.cfg.SettleDelay, s.cfg.MaxLoadMore); err != nil {
		return nil, fmt.Errorf("movers: %w", err)
	}

	rows, err := session.FindAll(moversRow)
	if err != nil {
		return nil, fmt.Errorf("movers: list rows: %w", err)
	}
	log.Printf("📊 Movers page %s: %d rows rendered", page.URL, len(rows))

	extractor := &Extractor{
		Fields: map[string]FieldSelector{
			"ticker": {Selector: moverTicker},
			"change": {Selector: moverChange},
			"cap":    {Selector: fmt.Sprintf("td:nth-child(%d)", page.CapColumn), Sentinel: "-"},
		},
	}

	var movers []Mover
	for _, rec := range extractor.Extract(rows) {
		ticker := helpers.FirstLine(rec["ticker"])
		if len(ticker) <= 1 {
			continue
		}
		movers = append(movers, Mover{
			Ticker:        ticker,
			PercentChange: rec["change"],
			MarketCap:     helpers.ToDollars(stripUnit(rec["cap"])),
		})
	}

	return movers, nil
}
