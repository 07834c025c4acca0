package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medidesk/clinic-platform/internal/calendar"
)

const cacheGenerationKey = "calendar:appts:gen"

// Cache is a read-through Redis cache for appointment range queries. Keys
// embed a generation counter; writes bump the counter so every cached range
// goes stale at once without scanning the keyspace. A nil Cache (or a Cache
// built from a nil client) is a no-op, so callers never branch on Redis
// availability.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates an appointment cache. Returns nil when redisClient is
// nil so the caller can wire it straight through.
func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: redisClient, ttl: ttl}
}

func (c *Cache) key(ctx context.Context, start, end time.Time, doctorID string) string {
	gen, err := c.client.Get(ctx, cacheGenerationKey).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("calendar:appts:g%d:%s:%s:%s",
		gen, start.Format("2006-01-02"), end.Format("2006-01-02"), doctorID)
}

// Get returns the cached appointment list for a range, if present.
func (c *Cache) Get(ctx context.Context, start, end time.Time, doctorID string) ([]calendar.Appointment, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(ctx, start, end, doctorID)).Bytes()
	if err != nil {
		return nil, false
	}
	var appts []calendar.Appointment
	if err := json.Unmarshal(raw, &appts); err != nil {
		return nil, false
	}
	return appts, true
}

// Set stores an appointment list for a range. Failures are swallowed; the
// cache is advisory and the database remains the source of truth.
func (c *Cache) Set(ctx context.Context, start, end time.Time, doctorID string, appts []calendar.Appointment) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(appts)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(ctx, start, end, doctorID), raw, c.ttl).Err()
}

// Invalidate bumps the generation counter, orphaning every cached range.
// Orphaned entries expire via their TTL.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.client.Incr(ctx, cacheGenerationKey).Err()
}
