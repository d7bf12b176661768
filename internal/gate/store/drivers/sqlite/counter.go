package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store"
	"github.com/aussiebroadwan/downloadgate/pkg/idx"
)

const (
	selectOldestStats = `
SELECT id, total_downloads, last_updated, created_at
FROM download_stats
ORDER BY created_at ASC, id ASC
LIMIT 1`

	insertStats = `
INSERT INTO download_stats (id, total_downloads, created_at)
VALUES (?, 0, ?)`

	updateStats = `
UPDATE download_stats
SET total_downloads = ?, last_updated = ?
WHERE id = ?`
)

// counterRepo keeps the counter in the oldest download_stats row.
//
// Increment reads the current value and writes value+1 as two separate
// statements without a transaction. Concurrent increments may read the same
// base value, in which case one of them is lost. The count never decreases.
type counterRepo struct {
	db *sql.DB
}

func (r *counterRepo) Read(ctx context.Context) (domain.DownloadStats, error) {
	return r.getOrCreate(ctx)
}

func (r *counterRepo) Increment(ctx context.Context) (domain.DownloadStats, error) {
	stats, err := r.getOrCreate(ctx)
	if err != nil {
		return domain.DownloadStats{}, err
	}

	now := time.Now().UTC()
	next := stats.TotalDownloads + 1

	res, err := r.db.ExecContext(ctx, updateStats, next, now, stats.ID)
	if err != nil {
		return domain.DownloadStats{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.DownloadStats{}, store.ErrNotFound
	}

	stats.TotalDownloads = next
	stats.LastUpdated = &now
	return stats, nil
}

func (r *counterRepo) getOrCreate(ctx context.Context) (domain.DownloadStats, error) {
	stats, err := r.oldest(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.DownloadStats{}, err
	}

	created := domain.DownloadStats{
		ID:        idx.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.db.ExecContext(ctx, insertStats, created.ID, created.CreatedAt); err != nil {
		return domain.DownloadStats{}, err
	}

	// Re-read so that a row created concurrently by another request wins if
	// it is older.
	return r.oldest(ctx)
}

func (r *counterRepo) oldest(ctx context.Context) (domain.DownloadStats, error) {
	var (
		s           domain.DownloadStats
		lastUpdated sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectOldestStats).Scan(
		&s.ID, &s.TotalDownloads, &lastUpdated, &s.CreatedAt,
	)
	if err != nil {
		return domain.DownloadStats{}, mapNotFound(err)
	}
	s.LastUpdated = mapNullTimePtr(lastUpdated)
	return s, nil
}
