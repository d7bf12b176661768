package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
)

const listActiveCatalog = `
SELECT id, version, file_name, architecture, download_url, sort_order, is_active
FROM download_versions
WHERE is_active = 1
ORDER BY sort_order ASC, updated_at DESC`

type catalogRepo struct {
	db *sql.DB
}

func (r *catalogRepo) ListActive(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, listActiveCatalog)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.CatalogEntry{}
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(
			&e.ID, &e.Version, &e.FileName, &e.Architecture,
			&e.DownloadURL, &e.SortOrder, &e.IsActive,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
