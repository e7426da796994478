package helpers

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// ReportSession is the reporting session of an earnings release
type ReportSession string

const (
	SessionBeforeOpen ReportSession = "Before Open"
	SessionAfterClose ReportSession = "After Close"
	SessionUnknown    ReportSession = "Unknown"
)

// SentimentCategory buckets a Fear & Greed reading
type SentimentCategory string

const (
	SentimentExtremeFear  SentimentCategory = "Extreme Fear"
	SentimentFear         SentimentCategory = "Fear"
	SentimentNeutral      SentimentCategory = "Neutral"
	SentimentGreed        SentimentCategory = "Greed"
	SentimentExtremeGreed SentimentCategory = "Extreme Greed"
	SentimentUnknown      SentimentCategory = "Unknown"
)

// suffix multipliers for abbreviated dollar amounts
var capMultipliers = map[byte]float64{
	'K': 1_000,
	'M': 1_000_000,
	'B': 1_000_000_000,
	'T': 1_000_000_000_000,
}

// ToDollars converts an abbreviated dollar string ("1.5B", "763M", "12,450")
// to a float value in dollars. Empty placeholders ("-", "N/A", em dash) map
// to 0, as does anything unparseable. Never returns an error: a bad cell must
// not cost the rest of a scraped batch.
func ToDollars(s string) float64 {
	s = strings.TrimSpace(strings.ToUpper(strings.ReplaceAll(s, ",", "")))

	switch s {
	case "", "-", "N/A", "—":
		return 0
	}

	mult := 1.0
	if m, ok := capMultipliers[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("⚠️  Cannot convert %q to a dollar amount: %v", s, err)
		return 0
	}
	return value * mult
}

// SessionOf maps a raw reporting-time label to a session. Blank or
// unrecognized labels map to SessionUnknown.
func SessionOf(s string) ReportSession {
	switch strings.TrimSpace(s) {
	case string(SessionBeforeOpen):
		return SessionBeforeOpen
	case string(SessionAfterClose):
		return SessionAfterClose
	default:
		return SessionUnknown
	}
}

// reportDateLayouts covers the date formats the earnings calendar renders
var reportDateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2",
}

// ParseReportDate parses an earnings calendar date cell. Layouts without a
// year assume the current year.
func ParseReportDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	var lastErr error
	for _, layout := range reportDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			lastErr = err
			continue
		}
		if t.Year() == 0 {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}
	return time.Time{}, lastErr
}

// FearCategory buckets a Fear & Greed Index value (0-100)
func FearCategory(value int) SentimentCategory {
	switch {
	case value >= 0 && value <= 25:
		return SentimentExtremeFear
	case value >= 26 && value <= 44:
		return SentimentFear
	case value >= 45 && value <= 55:
		return SentimentNeutral
	case value >= 56 && value <= 74:
		return SentimentGreed
	case value >= 75 && value <= 100:
		return SentimentExtremeGreed
	default:
		return SentimentUnknown
	}
}

// FirstLine returns the first line of a multi-line cell text
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
