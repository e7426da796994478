// Package tweets builds the outbound message texts. Every formatter returns
// "" for an empty input set; the publish layer treats "" as "post nothing".
package tweets

import (
	"fmt"
	"sort"
	"strings"

	"marketbrief/database"
	"marketbrief/helpers"
	"marketbrief/marketdata"
	"marketbrief/scrape"
)

const moversPerTweet = 10

// PreMarketEarnings formats the before-the-bell earnings reminder
func PreMarketEarnings(reports []database.EarningsReport) string {
	return earningsList("Major companies reporting earnings TODAY BEFORE the bell:", reports)
}

// AfterHoursEarnings formats the after-the-bell earnings reminder
func AfterHoursEarnings(reports []database.EarningsReport) string {
	return earningsList("Major companies reporting earnings TODAY AFTER the bell:", reports)
}

func earningsList(header string, reports []database.EarningsReport) string {
	if len(reports) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "- $%s --->\n", r.Ticker)
		fmt.Fprintf(&b, "  EPS estimate: %s\n", orNA(r.EPSEstimate))
		fmt.Fprintf(&b, "  Revenue estimate: %s\n\n", orNA(r.RevenueForecast))
	}
	return strings.TrimRight(b.String(), "\n")
}

// EconReminderTomorrow formats tomorrow's economic events
func EconReminderTomorrow(events []database.EconomicEvent) string {
	return econList("Major Economic events to watch for TOMORROW:", events)
}

// EconReminderWeekly formats the week's economic calendar
func EconReminderWeekly(events []database.EconomicEvent) string {
	return econList("Weekly Economic Calendar:", events)
}

func econList(header string, events []database.EconomicEvent) string {
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "🇺🇸 %s\n", ev.EventName)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PreMarketGainers formats the pre-market gainers list
func PreMarketGainers(movers []scrape.Mover) string {
	return moversList("Stocks rising in pre-market 📈", "last up", movers)
}

// PreMarketLosers formats the pre-market losers list
func PreMarketLosers(movers []scrape.Mover) string {
	return moversList("Stocks dropping in pre-market 📉", "last down", movers)
}

// PreMarketGap formats the pre-market gap list
func PreMarketGap(movers []scrape.Mover) string {
	return moversList("Biggest pre-market gaps this morning", "gapping", movers)
}

// WeekHigh52 formats the new 52-week highs list
func WeekHigh52(movers []scrape.Mover) string {
	return moversList("Stocks hitting fresh 52-WEEK HIGHS today", "moved", movers)
}

// WeekLow52 formats the new 52-week lows list
func WeekLow52(movers []scrape.Mover) string {
	return moversList("Stocks hitting fresh 52-WEEK LOWS today", "moved", movers)
}

// AllTimeHigh formats the all-time highs list
func AllTimeHigh(movers []scrape.Mover) string {
	return moversList("Stocks printing ALL-TIME HIGHS today 🚀", "moved", movers)
}

func moversList(header, verb string, movers []scrape.Mover) string {
	if len(movers) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i, m := range movers {
		if i >= moversPerTweet {
			break
		}
		fmt.Fprintf(&b, "- $%s %s %s\n", m.Ticker, verb, m.PercentChange)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FearSentiment formats the Fear & Greed Index update
func FearSentiment(value int, category helpers.SentimentCategory) string {
	return fmt.Sprintf(
		"🚨 The Fear & Greed Index has just entered new territory! 🚨\n"+
			"Current Sentiment: %s\n"+
			"Fear & Greed Score: %d\n\n"+
			"How do you feel about the market? 📉📈",
		category, value,
	)
}

// DailyMarketSummary formats the end-of-day index recap
func DailyMarketSummary(quotes map[string]*marketdata.Quote) string {
	return marketSummary("📊 Daily Market Summary", quotes)
}

// WeeklyMarketSummary formats the end-of-week index recap
func WeeklyMarketSummary(quotes map[string]*marketdata.Quote) string {
	return marketSummary("📊 Weekly Market Summary", quotes)
}

func marketSummary(header string, quotes map[string]*marketdata.Quote) string {
	if len(quotes) == 0 {
		return ""
	}

	names := make([]string, 0, len(quotes))
	for name := range quotes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, name := range names {
		q := quotes[name]
		arrow := "🔻"
		if q.Up {
			arrow = "🔺"
		}
		fmt.Fprintf(&b, "%s %s closed at %.2f (%+.2f, %+.2f%%)\n", arrow, name, q.Close, q.Change, q.PercentChange)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Closures formats the market-closed-tomorrow notice
func Closures(holiday *database.TradingHoliday) string {
	if holiday == nil {
		return ""
	}
	if holiday.EarlyClose {
		return fmt.Sprintf("⏰ Heads up: the Stock Market closes EARLY tomorrow for %s.", holiday.HolidayName)
	}
	return fmt.Sprintf("🔔 The Stock Market is closed tomorrow for %s.", holiday.HolidayName)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
