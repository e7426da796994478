package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"marketbrief/config"
	"marketbrief/database"
	"marketbrief/helpers"
	"marketbrief/marketdata"
	"marketbrief/notifications"
	"marketbrief/scrape"
	"marketbrief/tickers"
	"marketbrief/tweets"
)

// TradingView movers listings. The pre-market pages put market cap in column
// 10; the gap, 52-week and all-time-high pages use column 6.
const (
	preGainersURL = "https://www.tradingview.com/markets/stocks-usa/market-movers-pre-market-gainers/"
	preLosersURL  = "https://www.tradingview.com/markets/stocks-usa/market-movers-pre-market-losers/"
	preGapURL     = "https://www.tradingview.com/markets/stocks-usa/market-movers-pre-market-gappers/"
	week52HighURL = "https://www.tradingview.com/markets/stocks-usa/market-movers-52wk-high/"
	week52LowURL  = "https://www.tradingview.com/markets/stocks-usa/market-movers-52wk-low/"
	athURL        = "https://www.tradingview.com/markets/stocks-usa/market-movers-ath/"
)

// Jobs holds every scheduled task and the components they share. Each job is
// self-contained: it scrapes or reads, persists when there is something to
// persist, and publishes when there is something to say. An empty result set
// means silence, not an error.
type Jobs struct {
	cfg *config.Config

	earnings  *scrape.EarningsScraper
	movers    *scrape.MoversScraper
	econ      *scrape.EconScraper
	sentiment *scrape.SentimentScraper
	holidays  *scrape.HolidayFetcher

	earningsRepo  *database.EarningsRepository
	eventRepo     *database.EventRepository
	holidayRepo   *database.HolidayRepository
	sentimentRepo *database.SentimentRepository

	tickers   *tickers.Provider
	quotes    *marketdata.Client
	publisher notifications.Publisher

	rng *rand.Rand
	now func() time.Time
}

// ScrapeEarnings collects this week's earnings calendar and upserts the
// rows for tracked tickers
func (j *Jobs) ScrapeEarnings() error {
	known, err := j.tickers.KnownSet(context.Background())
	if err != nil {
		return fmt.Errorf("earnings job: %w", err)
	}

	reports, err := j.earnings.Scrape(known, j.now())
	if err != nil {
		return fmt.Errorf("earnings job: %w", err)
	}
	if len(reports) == 0 {
		log.Println("📭 No tracked earnings on the calendar")
		return nil
	}

	if err := j.earningsRepo.Upsert(reports); err != nil {
		return fmt.Errorf("earnings job: %w", err)
	}
	log.Printf("🗄️  Stored %d earnings reports", len(reports))
	return nil
}

// PreMarketEarningsTweet announces today's before-open reports
func (j *Jobs) PreMarketEarningsTweet() error {
	return j.earningsTweet(helpers.SessionBeforeOpen, tweets.PreMarketEarnings)
}

// AfterHoursEarningsTweet announces today's after-close reports
func (j *Jobs) AfterHoursEarningsTweet() error {
	return j.earningsTweet(helpers.SessionAfterClose, tweets.AfterHoursEarnings)
}

func (j *Jobs) earningsTweet(session helpers.ReportSession, format func([]database.EarningsReport) string) error {
	reports, err := j.earningsRepo.GetByDate(j.now())
	if err != nil {
		return fmt.Errorf("earnings tweet: %w", err)
	}

	var matched []database.EarningsReport
	for _, r := range reports {
		if r.Session != nil && *r.Session == string(session) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		log.Printf("📭 No %q earnings today, staying quiet", session)
		return nil
	}

	notifications.Send(j.publisher, format(matched))
	return nil
}

// PreMarketGainersTweet posts the sampled pre-market gainers
func (j *Jobs) PreMarketGainersTweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          preGainersURL,
		CapColumn:    10,
		MinMarketCap: j.cfg.Scrape.PreMinMarketCap,
	}, tweets.PreMarketGainers)
}

// PreMarketLosersTweet posts the sampled pre-market losers
func (j *Jobs) PreMarketLosersTweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          preLosersURL,
		CapColumn:    10,
		MinMarketCap: j.cfg.Scrape.PreMinMarketCap,
	}, tweets.PreMarketLosers)
}

// PreMarketGapTweet posts the sampled pre-market gappers
func (j *Jobs) PreMarketGapTweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          preGapURL,
		CapColumn:    6,
		MinMarketCap: j.cfg.Scrape.GapMinMarketCap,
	}, tweets.PreMarketGap)
}

// WeekHigh52Tweet posts stocks printing new 52-week highs
func (j *Jobs) WeekHigh52Tweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          week52HighURL,
		CapColumn:    6,
		MinMarketCap: j.cfg.Scrape.MoversMinMarketCap,
	}, tweets.WeekHigh52)
}

// WeekLow52Tweet posts stocks printing new 52-week lows
func (j *Jobs) WeekLow52Tweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          week52LowURL,
		CapColumn:    6,
		MinMarketCap: j.cfg.Scrape.MoversMinMarketCap,
	}, tweets.WeekLow52)
}

// AllTimeHighTweet posts stocks printing new all-time highs
func (j *Jobs) AllTimeHighTweet() error {
	return j.moversTweet(scrape.MoversPage{
		URL:          athURL,
		CapColumn:    6,
		MinMarketCap: j.cfg.Scrape.MoversMinMarketCap,
	}, tweets.AllTimeHigh)
}

func (j *Jobs) moversTweet(page scrape.MoversPage, format func([]scrape.Mover) string) error {
	records, err := j.movers.Scrape(page)
	if err != nil {
		return fmt.Errorf("movers tweet: %w", err)
	}

	known, err := j.tickers.KnownSet(context.Background())
	if err != nil {
		return fmt.Errorf("movers tweet: %w", err)
	}

	picked := scrape.FilterAndSample(records, known, page.MinMarketCap, j.cfg.Scrape.SampleSize, j.rng)
	if len(picked) == 0 {
		log.Println("📭 No movers above threshold, staying quiet")
		return nil
	}

	notifications.Send(j.publisher, format(picked))
	return nil
}

// EconCalendarTomorrow stores and announces tomorrow's high-impact US events
func (j *Jobs) EconCalendarTomorrow() error {
	tomorrow := j.now().AddDate(0, 0, 1)
	events, err := j.econ.Scrape(scrape.TimeframeTomorrow, tomorrow)
	if err != nil {
		return fmt.Errorf("econ job: %w", err)
	}
	if len(events) == 0 {
		log.Println("📭 No events tomorrow, staying quiet")
		return nil
	}

	if err := j.eventRepo.Insert(events); err != nil {
		return fmt.Errorf("econ job: %w", err)
	}
	notifications.Send(j.publisher, tweets.EconReminderTomorrow(events))
	return nil
}

// EconCalendarWeekly stores and announces this week's high-impact US events
func (j *Jobs) EconCalendarWeekly() error {
	events, err := j.econ.Scrape(scrape.TimeframeThisWeek, j.now())
	if err != nil {
		return fmt.Errorf("econ job: %w", err)
	}
	if len(events) == 0 {
		log.Println("📭 No events this week, staying quiet")
		return nil
	}

	if err := j.eventRepo.Insert(events); err != nil {
		return fmt.Errorf("econ job: %w", err)
	}
	notifications.Send(j.publisher, tweets.EconReminderWeekly(events))
	return nil
}

// FearGreedJob captures the Fear & Greed Index and tweets when the reading
// moved into a new category since the last capture
func (j *Jobs) FearGreedJob() error {
	value, category, err := j.sentiment.Scrape()
	if err != nil {
		return fmt.Errorf("sentiment job: %w", err)
	}

	previous, err := j.sentimentRepo.GetLatest()
	if err != nil {
		return fmt.Errorf("sentiment job: %w", err)
	}

	reading := database.SentimentReading{
		Date:     j.now(),
		Value:    value,
		Category: string(category),
	}
	if err := j.sentimentRepo.Upsert(reading); err != nil {
		return fmt.Errorf("sentiment job: %w", err)
	}
	log.Printf("📊 Fear & Greed: %d (%s)", value, category)

	if previous != nil && previous.Category == string(category) {
		log.Println("📭 Sentiment category unchanged, staying quiet")
		return nil
	}

	notifications.Send(j.publisher, tweets.FearSentiment(value, category))
	return nil
}

// DailySummaryTweet posts the end-of-day index recap
func (j *Jobs) DailySummaryTweet() error {
	return j.summaryTweet(tweets.DailyMarketSummary)
}

// WeeklySummaryTweet posts the end-of-week index recap
func (j *Jobs) WeeklySummaryTweet() error {
	return j.summaryTweet(tweets.WeeklyMarketSummary)
}

func (j *Jobs) summaryTweet(format func(map[string]*marketdata.Quote) string) error {
	quotes, err := j.quotes.IndexQuotes()
	if err != nil {
		return fmt.Errorf("summary tweet: %w", err)
	}
	if len(quotes) == 0 {
		log.Println("📭 No index quotes available, staying quiet")
		return nil
	}

	notifications.Send(j.publisher, format(quotes))
	return nil
}

// HolidayNoticeJob refreshes the holiday calendar and warns when the market
// is closed (or closes early) tomorrow
func (j *Jobs) HolidayNoticeJob() error {
	holidays, err := j.holidays.Fetch(j.now())
	if err != nil {
		// A fetch failure is not fatal: previously stored holidays still
		// answer the tomorrow lookup.
		log.Printf("⚠️  Holiday calendar refresh failed: %v", err)
	} else if len(holidays) > 0 {
		if err := j.holidayRepo.Insert(holidays); err != nil {
			return fmt.Errorf("holiday job: %w", err)
		}
	}

	tomorrow := j.now().AddDate(0, 0, 1)
	holiday, err := j.holidayRepo.GetByDate(tomorrow)
	if err != nil {
		return fmt.Errorf("holiday job: %w", err)
	}
	if holiday == nil {
		log.Println("📭 Market open tomorrow, staying quiet")
		return nil
	}

	notifications.Send(j.publisher, tweets.Closures(holiday))
	return nil
}
