package analytics

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterTTL keeps daily counters around long enough for a two-day dashboard
// window before Redis reclaims them.
const counterTTL = 48 * time.Hour

// RedisCounterStore keeps per-token daily counters in Redis.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a new Redis-backed analytics counter store.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error {
	return s.increment(ctx, "created", event.CreatedAt)
}

func (s *RedisCounterStore) SaveLinkResolved(ctx context.Context, event *LinkResolvedEvent) error {
	key := "analytics:resolved:" + event.Token + ":" + event.ResolvedAt.UTC().Format("2006-01-02")

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	_, err := pipe.Exec(ctx)

	return err
}

func (s *RedisCounterStore) increment(ctx context.Context, kind string, at time.Time) error {
	key := "analytics:" + kind + ":" + at.UTC().Format("2006-01-02")

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	_, err := pipe.Exec(ctx)

	return err
}

// Compile-time check.
var _ Store = (*RedisCounterStore)(nil)
