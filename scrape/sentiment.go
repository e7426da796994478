package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"marketbrief/browser"
	"marketbrief/config"
	"marketbrief/helpers"
)

// CNN Fear & Greed page markup
const (
	fearGreedURL   = "https://www.cnn.com/markets/fear-and-greed"
	fearGreedReady = "span[class*='dial-number-value']"
	fearGreedDial  = "span[class*='dial-number-value']"
)

// SentimentScraper reads the Fear & Greed Index dial
type SentimentScraper struct {
	nav *browser.Navigator
	cfg config.ScrapeConfig
}

// NewSentimentScraper creates a Fear & Greed scraper
func NewSentimentScraper(nav *browser.Navigator, cfg config.ScrapeConfig) *SentimentScraper {
	return &SentimentScraper{nav: nav, cfg: cfg}
}

// Scrape returns the current index value and its category. A dial that
// renders but holds no number is a hard failure, there is no partial
// result to salvage on this page.
func (s *SentimentScraper) Scrape() (int, helpers.SentimentCategory, error) {
	session, err := s.nav.Navigate(fearGreedURL, fearGreedReady, s.cfg.ReadinessTimeout)
	if err != nil {
		return 0, helpers.SentimentUnknown, fmt.Errorf("sentiment: %w", err)
	}
	defer session.Close()

	dial, err := session.Find(fearGreedDial)
	if err != nil || dial == nil {
		return 0, helpers.SentimentUnknown, fmt.Errorf("sentiment: dial not found: %v", err)
	}

	text, err := dial.Text()
	if err != nil {
		return 0, helpers.SentimentUnknown, fmt.Errorf("sentiment: %w", err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, helpers.SentimentUnknown, fmt.Errorf("sentiment: dial text %q: %w", text, err)
	}

	return value, helpers.FearCategory(value), nil
}
