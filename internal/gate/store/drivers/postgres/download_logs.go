package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/pkg/idx"
)

type downloadLogsRepo struct {
	db *sqlx.DB
}

func (r *downloadLogsRepo) Append(ctx context.Context, l domain.DownloadLog) error {
	if l.ID == "" {
		l.ID = idx.New().String()
	}

	query := `INSERT INTO download_logs (id, ip_hash, user_agent, downloaded_at)
	          VALUES (:id, :ip_hash, :user_agent, :downloaded_at)`

	_, err := r.db.NamedExecContext(ctx, query, map[string]any{
		"id":            l.ID,
		"ip_hash":       l.IPHash,
		"user_agent":    l.UserAgent,
		"downloaded_at": l.DownloadedAt.UTC(),
	})
	return err
}
