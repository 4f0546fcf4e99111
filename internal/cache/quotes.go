package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"price-ticker/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultQuoteTTL bounds how long a latest quote stays readable after polling stops.
const DefaultQuoteTTL = 90 * time.Second

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// QuoteCache keeps the most recent quote per instrument in Redis so other
// processes can read it. Each write replaces the previous one.
type QuoteCache struct {
	redis RedisClient
	ttl   time.Duration
}

func NewQuoteCache(client RedisClient, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &QuoteCache{redis: client, ttl: ttl}
}

func quoteKey(instrumentKey string) string {
	return "quote:" + instrumentKey
}

// PublishQuote stores quote as the latest value for its instrument.
func (c *QuoteCache) PublishQuote(ctx context.Context, quote *domain.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, quoteKey(quote.InstrumentKey), data, c.ttl).Err()
}

// LatestQuote returns the cached quote for instrumentKey, or nil when none is
// cached.
func (c *QuoteCache) LatestQuote(ctx context.Context, instrumentKey string) (*domain.Quote, error) {
	data, err := c.redis.Get(ctx, quoteKey(instrumentKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
