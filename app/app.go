package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"marketbrief/browser"
	"marketbrief/cache"
	"marketbrief/config"
	"marketbrief/database"
	"marketbrief/marketdata"
	"marketbrief/notifications"
	"marketbrief/scrape"
	"marketbrief/tickers"
)

// App represents the main application
type App struct {
	config    *config.Config
	db        *database.Database
	redis     *cache.RedisClient
	browser   *browser.Playwright
	scheduler *Scheduler
	jobs      *Jobs
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		scheduler: NewScheduler(),
	}
}

// Start wires up every component and runs the scheduler until interrupted
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Database connection + schema
	log.Println("🗄️  Connecting to database...")
	db, err := database.Connect(
		a.config.DatabaseHost,
		a.config.DatabasePort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	if err := a.db.Migrate(); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// 2. Redis connection (optional, caching degrades gracefully)
	log.Println("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if a.redis == nil {
		log.Println("⚠️  Redis connection failed. Caching disabled.")
	}

	// 3. Headless browser
	log.Println("📡 Launching browser...")
	pw, err := browser.Launch(a.config.Scrape.Headless)
	if err != nil {
		return fmt.Errorf("browser launch failed: %w", err)
	}
	a.browser = pw
	nav := browser.NewNavigator(pw)

	// 4. Repositories and domain components
	earningsRepo := database.NewEarningsRepository(a.db)
	eventRepo := database.NewEventRepository(a.db)
	holidayRepo := database.NewHolidayRepository(a.db)
	sentimentRepo := database.NewSentimentRepository(a.db)
	tickerRepo := database.NewTickerRepository(a.db)

	provider := tickers.NewProvider(tickerRepo, a.redis, a.config.Scrape.TrackedTickers)

	var publisher notifications.Publisher
	if a.config.Publisher.DryRun || a.config.Publisher.BearerToken == "" {
		log.Println("ℹ️  Publisher in dry-run mode, tweets go to the log")
		publisher = notifications.DryRunPublisher{}
	} else {
		publisher = notifications.NewTwitterClient(a.config.Publisher.Endpoint, a.config.Publisher.BearerToken)
	}

	a.jobs = &Jobs{
		cfg:           a.config,
		earnings:      scrape.NewEarningsScraper(nav, a.config.Scrape),
		movers:        scrape.NewMoversScraper(nav, a.config.Scrape),
		econ:          scrape.NewEconScraper(nav, a.config.Scrape),
		sentiment:     scrape.NewSentimentScraper(nav, a.config.Scrape),
		holidays:      scrape.NewHolidayFetcher(),
		earningsRepo:  earningsRepo,
		eventRepo:     eventRepo,
		holidayRepo:   holidayRepo,
		sentimentRepo: sentimentRepo,
		tickers:       provider,
		quotes:        marketdata.NewClient(a.config.FinnhubAPIKey),
		publisher:     publisher,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		now:           time.Now,
	}

	// 5. Timetable (US/Eastern wall clock assumed via TZ)
	a.registerSchedule()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.scheduler.Start(ctx)
	}()

	log.Println("✅ Market brief bot started")

	err = a.gracefulShutdown(cancel)
	wg.Wait()
	return err
}

// registerSchedule lays out the daily timetable
func (a *App) registerSchedule() {
	s := a.scheduler

	s.Add("scrape-earnings", "03:30", a.jobs.ScrapeEarnings)
	s.Add("premarket-earnings-tweet", "04:30", a.jobs.PreMarketEarningsTweet)
	s.Add("afterhours-earnings-tweet", "12:00", a.jobs.AfterHoursEarningsTweet)

	s.Add("premarket-gainers", "09:00", a.jobs.PreMarketGainersTweet)
	s.Add("premarket-losers", "09:05", a.jobs.PreMarketLosersTweet)
	s.Add("premarket-gappers", "09:10", a.jobs.PreMarketGapTweet)

	s.Add("52wk-highs", "14:45", a.jobs.WeekHigh52Tweet)
	s.Add("52wk-lows", "14:50", a.jobs.WeekLow52Tweet)
	s.Add("all-time-highs", "15:00", a.jobs.AllTimeHighTweet)

	s.Add("fear-greed", "16:05", a.jobs.FearGreedJob)
	s.Add("daily-summary", "16:10", a.jobs.DailySummaryTweet)
	s.AddWeekly("weekly-summary", time.Friday, "16:20", a.jobs.WeeklySummaryTweet)

	s.Add("econ-tomorrow", "20:00", a.jobs.EconCalendarTomorrow)
	s.AddWeekly("econ-weekly", time.Sunday, "17:00", a.jobs.EconCalendarWeekly)

	s.Add("holiday-notice", "20:15", a.jobs.HolidayNoticeJob)
}

// gracefulShutdown waits for an interrupt and releases shared resources
func (a *App) gracefulShutdown(cancel context.CancelFunc) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt
	log.Println("🛑 Shutdown signal received, initiating graceful shutdown...")

	cancel()

	if a.browser != nil {
		log.Println("📡 Closing browser...")
		if err := a.browser.Close(); err != nil {
			log.Printf("⚠️  Browser close failed: %v", err)
		}
	}
	if a.redis != nil {
		log.Println("🧠 Closing Redis connection...")
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if a.db != nil {
		log.Println("🗄️  Closing database connection...")
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Database close failed: %v", err)
		}
	}

	log.Println("✅ Shutdown complete")
	return nil
}
