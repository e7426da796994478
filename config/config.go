package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Finnhub configuration
	FinnhubAPIKey string

	// Publisher configuration
	Publisher PublisherConfig

	// Scrape configuration
	Scrape ScrapeConfig
}

// PublisherConfig holds the outbound Twitter/X API settings
type PublisherConfig struct {
	BearerToken string
	Endpoint    string
	DryRun      bool // log tweets instead of posting
}

// ScrapeConfig holds scraping parameters and thresholds
type ScrapeConfig struct {
	// Page readiness and pagination
	ReadinessTimeout time.Duration // max wait for the readiness marker after navigation
	SettleDelay      time.Duration // pause between "load more" clicks
	MaxLoadMore      int           // safety cap on "load more" iterations

	// Record filtering
	MoversMinMarketCap float64 // default threshold for the highs/lows pages
	GapMinMarketCap    float64 // threshold for the pre-market gap page
	PreMinMarketCap    float64 // threshold for pre-market gainers/losers
	SampleSize         int     // random non-index picks appended after the S&P 500 names

	// Earnings allow-list (comma separated), merged with the sp500_tickers table
	TrackedTickers []string

	Headless bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "marketbrief"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "marketbrief"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", ""),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		FinnhubAPIKey: os.Getenv("FINNHUB_API_KEY"),

		Publisher: PublisherConfig{
			BearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
			Endpoint:    getEnvOrDefault("TWITTER_API_URL", "https://api.twitter.com/2/tweets"),
			DryRun:      getEnvOrDefault("PUBLISHER_DRY_RUN", "false") == "true",
		},

		Scrape: ScrapeConfig{
			ReadinessTimeout: getEnvDuration("SCRAPE_READINESS_TIMEOUT", 30*time.Second),
			SettleDelay:      getEnvDuration("SCRAPE_SETTLE_DELAY", 2*time.Second),
			MaxLoadMore:      getEnvInt("SCRAPE_MAX_LOAD_MORE", 200),

			MoversMinMarketCap: getEnvFloat("SCRAPE_MOVERS_MIN_CAP", 5_000_000_000),
			GapMinMarketCap:    getEnvFloat("SCRAPE_GAP_MIN_CAP", 50_000_000),
			PreMinMarketCap:    getEnvFloat("SCRAPE_PREMARKET_MIN_CAP", 100_000_000),
			SampleSize:         getEnvInt("SCRAPE_SAMPLE_SIZE", 5),

			TrackedTickers: splitList(os.Getenv("TRACKED_TICKERS")),

			Headless: getEnvOrDefault("SCRAPE_HEADLESS", "true") == "true",
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvDuration gets environment variable as a duration ("30s", "2m") or returns default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, strings.ToUpper(t))
		}
	}
	return out
}
