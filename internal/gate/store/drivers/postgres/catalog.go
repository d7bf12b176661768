package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
)

type catalogRow struct {
	ID           string `db:"id"`
	Version      string `db:"version"`
	FileName     string `db:"file_name"`
	Architecture string `db:"architecture"`
	DownloadURL  string `db:"download_url"`
	SortOrder    int    `db:"sort_order"`
	IsActive     bool   `db:"is_active"`
}

type catalogRepo struct {
	db *sqlx.DB
}

func (r *catalogRepo) ListActive(ctx context.Context) ([]domain.CatalogEntry, error) {
	query := `SELECT id, version, file_name, architecture, download_url, sort_order, is_active
	          FROM download_versions
	          WHERE is_active = TRUE
	          ORDER BY sort_order ASC, updated_at DESC`

	var rows []catalogRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	entries := make([]domain.CatalogEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.CatalogEntry(row)
	}
	return entries, nil
}
