package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/pkg/idx"
)

const insertDownloadLog = `
INSERT INTO download_logs (id, ip_hash, user_agent, downloaded_at)
VALUES (?, ?, ?, ?)`

type downloadLogsRepo struct {
	db *sql.DB
}

func (r *downloadLogsRepo) Append(ctx context.Context, l domain.DownloadLog) error {
	if l.ID == "" {
		l.ID = idx.New().String()
	}
	_, err := r.db.ExecContext(ctx, insertDownloadLog, l.ID, l.IPHash, l.UserAgent, l.DownloadedAt.UTC())
	return err
}
