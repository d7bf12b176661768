// Package redis implements the download counter on Redis. Increment uses
// INCR inside MULTI/EXEC, so concurrent increments are never lost.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
)

// DefaultPrefix namespaces the counter keys.
const DefaultPrefix = "downloadgate:stats"

// CounterID is reported as the stats row id for the redis counter.
const CounterID = "redis"

// Counter stores the counter under three keys: <prefix>:total,
// <prefix>:last_updated and <prefix>:created_at (both unix nanoseconds).
type Counter struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// NewCounter parses a redis:// URL, connects and pings once.
func NewCounter(ctx context.Context, url string) (*Counter, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Counter{client: client, prefix: DefaultPrefix, now: time.Now}, nil
}

// Close closes the Redis connection.
func (c *Counter) Close() error {
	return c.client.Close()
}

// Ping verifies the Redis connection is still alive.
func (c *Counter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Counter) key(name string) string { return c.prefix + ":" + name }

func (c *Counter) Read(ctx context.Context) (domain.DownloadStats, error) {
	if err := c.ensureCreated(ctx); err != nil {
		return domain.DownloadStats{}, err
	}

	vals, err := c.client.MGet(ctx, c.key("total"), c.key("last_updated"), c.key("created_at")).Result()
	if err != nil {
		return domain.DownloadStats{}, err
	}
	return c.toStats(vals)
}

func (c *Counter) Increment(ctx context.Context) (domain.DownloadStats, error) {
	now := c.now().UTC()

	var incr *goredis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, c.key("total"))
		pipe.Set(ctx, c.key("last_updated"), now.UnixNano(), 0)
		pipe.SetNX(ctx, c.key("created_at"), now.UnixNano(), 0)
		return nil
	})
	if err != nil {
		return domain.DownloadStats{}, err
	}

	created, err := c.client.Get(ctx, c.key("created_at")).Result()
	if err != nil {
		return domain.DownloadStats{}, err
	}
	createdAt, err := parseUnixNano(created)
	if err != nil {
		return domain.DownloadStats{}, err
	}

	return domain.DownloadStats{
		ID:             CounterID,
		TotalDownloads: incr.Val(),
		LastUpdated:    &now,
		CreatedAt:      createdAt,
	}, nil
}

func (c *Counter) ensureCreated(ctx context.Context) error {
	return c.client.SetNX(ctx, c.key("created_at"), c.now().UTC().UnixNano(), 0).Err()
}

func (c *Counter) toStats(vals []any) (domain.DownloadStats, error) {
	stats := domain.DownloadStats{ID: CounterID}

	if s, ok := vals[0].(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domain.DownloadStats{}, fmt.Errorf("corrupt counter value %q: %w", s, err)
		}
		stats.TotalDownloads = n
	}
	if s, ok := vals[1].(string); ok {
		t, err := parseUnixNano(s)
		if err != nil {
			return domain.DownloadStats{}, err
		}
		stats.LastUpdated = &t
	}
	if s, ok := vals[2].(string); ok {
		t, err := parseUnixNano(s)
		if err != nil {
			return domain.DownloadStats{}, err
		}
		stats.CreatedAt = t
	}
	return stats, nil
}

var errCorruptTime = errors.New("corrupt timestamp")

func parseUnixNano(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", errCorruptTime, s)
	}
	return time.Unix(0, n).UTC(), nil
}
