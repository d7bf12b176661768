package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/pkg/idx"
)

type statsRow struct {
	ID             string       `db:"id"`
	TotalDownloads int64        `db:"total_downloads"`
	LastUpdated    sql.NullTime `db:"last_updated"`
	CreatedAt      time.Time    `db:"created_at"`
}

func (r statsRow) toDomain() domain.DownloadStats {
	s := domain.DownloadStats{
		ID:             r.ID,
		TotalDownloads: r.TotalDownloads,
		CreatedAt:      r.CreatedAt,
	}
	if r.LastUpdated.Valid {
		t := r.LastUpdated.Time
		s.LastUpdated = &t
	}
	return s
}

// counterRepo increments with a single UPDATE ... RETURNING, so concurrent
// increments are never lost.
type counterRepo struct {
	db *sqlx.DB
}

func (r *counterRepo) Read(ctx context.Context) (domain.DownloadStats, error) {
	if err := r.ensureRow(ctx); err != nil {
		return domain.DownloadStats{}, err
	}

	query := `SELECT id, total_downloads, last_updated, created_at
	          FROM download_stats
	          ORDER BY created_at ASC, id ASC
	          LIMIT 1`

	var row statsRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return domain.DownloadStats{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *counterRepo) Increment(ctx context.Context) (domain.DownloadStats, error) {
	if err := r.ensureRow(ctx); err != nil {
		return domain.DownloadStats{}, err
	}

	query := `UPDATE download_stats
	          SET total_downloads = total_downloads + 1, last_updated = $1
	          WHERE id = (
	              SELECT id FROM download_stats ORDER BY created_at ASC, id ASC LIMIT 1
	          )
	          RETURNING id, total_downloads, last_updated, created_at`

	var row statsRow
	if err := r.db.GetContext(ctx, &row, query, time.Now().UTC()); err != nil {
		return domain.DownloadStats{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

// ensureRow inserts the counter row when the table is empty.
func (r *counterRepo) ensureRow(ctx context.Context) error {
	query := `INSERT INTO download_stats (id, total_downloads)
	          SELECT $1, 0
	          WHERE NOT EXISTS (SELECT 1 FROM download_stats)`

	_, err := r.db.ExecContext(ctx, query, idx.New().String())
	return err
}
