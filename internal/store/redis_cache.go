package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/shortlink"
)

// RedisCacheLinkStore wraps a LinkRepository with Redis caching for the
// resolve hot path. Only active links are cached, and an entry never outlives
// the link's due date, so a cached hit can still be trusted for the lazy
// expiry check. Listing and bulk operations always go to the backing store.
type RedisCacheLinkStore struct {
	store  shortlink.LinkRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheLinkStore creates a new Redis-cached link store decorator.
func NewRedisCacheLinkStore(
	store shortlink.LinkRepository, client *redis.Client, ttl time.Duration,
) *RedisCacheLinkStore {
	return &RedisCacheLinkStore{
		store:  store,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// Insert persists the link in the backing store and populates the cache.
func (r *RedisCacheLinkStore) Insert(ctx context.Context, link *shortlink.ShortLink) error {
	if err := r.store.Insert(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

func (r *RedisCacheLinkStore) FindByToken(ctx context.Context, token string) (*shortlink.ShortLink, error) {
	return r.store.FindByToken(ctx, token)
}

// FindActiveByToken checks the cache first; a miss falls through to the
// backing store and repopulates the cache when the link is still active.
func (r *RedisCacheLinkStore) FindActiveByToken(ctx context.Context, token string) (*shortlink.ShortLink, error) {
	if link, err := r.getFromCache(ctx, token); err == nil {
		return link, nil
	}

	link, err := r.store.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// Deactivate invalidates the cache entry before delegating, so a resolvable
// answer is never served from cache after the deactivation.
func (r *RedisCacheLinkStore) Deactivate(ctx context.Context, token string) (bool, error) {
	r.client.Del(ctx, r.prefix+token)

	return r.store.Deactivate(ctx, token)
}

func (r *RedisCacheLinkStore) List(
	ctx context.Context, filter shortlink.ListFilter, offset, limit int,
) ([]shortlink.ShortLink, int, error) {
	return r.store.List(ctx, filter, offset, limit)
}

// BulkDeactivate delegates to the backing store. Cached entries for swept
// links are not invalidated here; their TTL is capped by the due date, so a
// stale hit is still past due and resolves to the lazy-expiry path.
func (r *RedisCacheLinkStore) BulkDeactivate(ctx context.Context, now time.Time) (int64, error) {
	return r.store.BulkDeactivate(ctx, now)
}

func (r *RedisCacheLinkStore) getFromCache(ctx context.Context, token string) (*shortlink.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+token).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortlink.ErrNotFound
	}

	id, _ := strconv.ParseInt(result["id"], 10, 64)

	return &shortlink.ShortLink{
		ID:          id,
		Token:       result["token"],
		OriginalURL: result["original_url"],
		Active:      true,
		DueDate:     time.Unix(0, parseInt(result["due_date"])),
		CreatedAt:   time.Unix(0, parseInt(result["created_at"])),
	}, nil
}

func (r *RedisCacheLinkStore) cacheLink(ctx context.Context, link *shortlink.ShortLink) {
	if !link.Active {
		return
	}

	ttl := r.ttl

	if untilDue := time.Until(link.DueDate); untilDue < ttl {
		ttl = untilDue
	}

	if ttl <= 0 {
		return
	}

	key := r.prefix + link.Token

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":           link.ID,
		"token":        link.Token,
		"original_url": link.OriginalURL,
		"due_date":     link.DueDate.UnixNano(),
		"created_at":   link.CreatedAt.UnixNano(),
	})
	pipe.Expire(ctx, key, ttl)
	_, _ = pipe.Exec(ctx)
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)

	return n
}

// Compile-time check.
var _ shortlink.LinkRepository = (*RedisCacheLinkStore)(nil)
