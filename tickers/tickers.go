// Package tickers resolves the known-ticker set (S&P 500 membership plus any
// extra tracked names) from the database, with a Redis cache in front so the
// set is not re-read on every scheduled job.
package tickers

import (
	"context"
	"log"
	"time"

	"marketbrief/cache"
	"marketbrief/database"
)

const (
	cacheKey = "known_tickers"
	cacheTTL = 1 * time.Hour
)

// Provider hands out the known-ticker set
type Provider struct {
	repo  *database.TickerRepository
	redis *cache.RedisClient
	extra []string // configured tracked tickers merged into the set
}

// NewProvider creates a ticker provider
func NewProvider(repo *database.TickerRepository, redis *cache.RedisClient, extra []string) *Provider {
	return &Provider{repo: repo, redis: redis, extra: extra}
}

// KnownSet returns the current known-ticker set. Cache first, database on
// miss; the configured extras are always merged in.
func (p *Provider) KnownSet(ctx context.Context) (map[string]struct{}, error) {
	var tickers []string

	if p.redis != nil {
		if err := p.redis.Get(ctx, cacheKey, &tickers); err == nil {
			return p.toSet(tickers), nil
		}
	}

	tickers, err := p.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if p.redis != nil {
		if err := p.redis.Set(ctx, cacheKey, tickers, cacheTTL); err != nil {
			log.Printf("⚠️  Failed to cache ticker set: %v", err)
		}
	}

	return p.toSet(tickers), nil
}

// Invalidate drops the cached set after the membership table changes
func (p *Provider) Invalidate(ctx context.Context) {
	if p.redis != nil {
		if err := p.redis.Delete(ctx, cacheKey); err != nil {
			log.Printf("⚠️  Failed to invalidate ticker cache: %v", err)
		}
	}
}

func (p *Provider) toSet(tickers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tickers)+len(p.extra))
	for _, t := range tickers {
		set[t] = struct{}{}
	}
	for _, t := range p.extra {
		set[t] = struct{}{}
	}
	return set
}
