package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedVersion(t *testing.T, st *Store, id, version string, sortOrder int, active bool, updatedAt time.Time) {
	t.Helper()

	_, err := st.db.Exec(`
INSERT INTO download_versions (id, version, file_name, architecture, download_url, sort_order, is_active, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, version, "setup-"+version+".exe", domain.Arch64,
		"https://cdn.example.com/"+version, sortOrder, active, updatedAt.UTC())
	require.NoError(t, err)
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestCatalogListActive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedVersion(t, st, "a", "1.0", 2, true, base)
	seedVersion(t, st, "b", "1.1", 1, true, base)
	seedVersion(t, st, "c", "1.2", 1, true, base.Add(time.Hour))
	seedVersion(t, st, "d", "0.9", 0, false, base)

	entries, err := st.Catalog().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	require.Equal(t, []string{"c", "b", "a"}, ids)

	for _, e := range entries {
		require.True(t, e.IsActive)
		require.Equal(t, domain.Arch64, e.Architecture)
	}
	require.Equal(t, "https://cdn.example.com/1.2", entries[0].DownloadURL)
}

func TestCatalogListActiveEmpty(t *testing.T) {
	entries, err := newTestStore(t).Catalog().ListActive(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestCounterLazilyCreated(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	stats, err := st.Counter().Read(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalDownloads)
	require.NotEmpty(t, stats.ID)
	require.Nil(t, stats.LastUpdated)

	again, err := st.Counter().Read(ctx)
	require.NoError(t, err)
	require.Equal(t, stats.ID, again.ID)

	var rows int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM download_stats`).Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestCounterIncrement(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for i := 1; i <= 3; i++ {
		stats, err := st.Counter().Increment(ctx)
		require.NoError(t, err)
		require.EqualValues(t, i, stats.TotalDownloads)
		require.NotNil(t, stats.LastUpdated)
	}

	stats, err := st.Counter().Read(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.TotalDownloads)
	require.NotNil(t, stats.LastUpdated)
}

func TestCounterUsesOldestRow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := st.db.Exec(`INSERT INTO download_stats (id, total_downloads, created_at) VALUES ('old', 41, ?), ('new', 7, ?)`,
		old, old.Add(time.Hour))
	require.NoError(t, err)

	stats, err := st.Counter().Increment(ctx)
	require.NoError(t, err)
	require.Equal(t, "old", stats.ID)
	require.EqualValues(t, 42, stats.TotalDownloads)
}

func TestCounterConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Counter().Increment(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := st.Counter().Read(ctx)
	require.NoError(t, err)
	// Read-modify-write may lose increments; it never exceeds n or goes
	// negative.
	require.GreaterOrEqual(t, stats.TotalDownloads, int64(1))
	require.LessOrEqual(t, stats.TotalDownloads, int64(n))
}

func TestDownloadLogsAppend(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, st.DownloadLogs().Append(ctx, domain.DownloadLog{
		IPHash:       "abc123",
		UserAgent:    "curl/8.5.0",
		DownloadedAt: at,
	}))

	var (
		id, ipHash, ua string
		downloadedAt   time.Time
	)
	require.NoError(t, st.db.QueryRow(`SELECT id, ip_hash, user_agent, downloaded_at FROM download_logs`).
		Scan(&id, &ipHash, &ua, &downloadedAt))
	require.NotEmpty(t, id)
	require.Equal(t, "abc123", ipHash)
	require.Equal(t, "curl/8.5.0", ua)
	require.True(t, at.Equal(downloadedAt))
}
