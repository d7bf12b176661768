package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *Counter {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	c, err := NewCounter(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewCounterInvalidURL(t *testing.T) {
	_, err := NewCounter(t.Context(), "not a url")
	require.Error(t, err)
}

func TestRedisCounter(t *testing.T) {
	c := setupRedis(t)
	ctx := t.Context()

	stats, err := c.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, CounterID, stats.ID)
	require.Zero(t, stats.TotalDownloads)
	require.Nil(t, stats.LastUpdated)
	require.False(t, stats.CreatedAt.IsZero())

	stats, err = c.Increment(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.TotalDownloads)
	require.NotNil(t, stats.LastUpdated)

	const n = 40
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Increment(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err = c.Read(ctx)
	require.NoError(t, err)
	require.EqualValues(t, n+1, stats.TotalDownloads)
}
