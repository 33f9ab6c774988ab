package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/codec"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/domain"
)

// QuoteOfDayCachePrefix is the key prefix of cached quotes of the day.
const QuoteOfDayCachePrefix = "quote-of-day-"

// Stats are the statistics of one named cache.
type Stats struct {
	*codec.Stats
	CacheName string `json:"cacheName"`
}

// QuoteOfDayCache keeps the resolved quote of the day per date key.
type QuoteOfDayCache struct {
	quotes *PrefixedCache[domain.Quote]
	ttl    time.Duration
}

// NewQuoteOfDayCache creates the cache on the store selected by cfg.
func NewQuoteOfDayCache(cfg *config.CacheConfig) *QuoteOfDayCache {
	ttl := cfg.QuoteOfDayTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &QuoteOfDayCache{
		quotes: NewPrefixedCache[domain.Quote](newCacheInstanceByType(cfg), cfg.Type, QuoteOfDayCachePrefix),
		ttl:    ttl,
	}
}

// Get returns the quote cached for date. Misses and store errors both report false.
func (c *QuoteOfDayCache) Get(ctx context.Context, date string) (*domain.Quote, bool) {
	q, err := c.quotes.Get(ctx, date)
	if err != nil {
		log.Debug("quote of day cache miss", "date", date, "error", err)
		return nil, false
	}
	return &q, true
}

// Set caches q for date.
func (c *QuoteOfDayCache) Set(ctx context.Context, date string, q domain.Quote) {
	q.IsFavorite = false
	if err := c.quotes.Set(ctx, date, q, store.WithExpiration(c.ttl)); err != nil {
		log.Warn("failed to cache quote of day", "date", date, "error", err)
	}
}

// Clear drops every cached quote of the day.
func (c *QuoteOfDayCache) Clear(ctx context.Context) error {
	return c.quotes.Clear(ctx)
}

// GetStats returns the statistics of the underlying store.
func (c *QuoteOfDayCache) GetStats() []*Stats {
	return []*Stats{
		{
			Stats:     c.quotes.GetStats(),
			CacheName: "quote-of-day",
		},
	}
}
