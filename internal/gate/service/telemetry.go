package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store"
	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"
)

// TelemetryService maintains the download counter and the anonymized
// download log.
type TelemetryService struct {
	Counter    store.Counter
	Logs       store.DownloadLogs
	Anonymizer *cryptox.Anonymizer

	// Now defaults to time.Now.
	Now func() time.Time
}

// Count returns the current download total.
func (s *TelemetryService) Count(ctx context.Context) (int64, error) {
	stats, err := s.Counter.Read(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to read download counter", slog.Any("error", err))
		return 0, err
	}
	return stats.TotalDownloads, nil
}

// Record counts one download and appends an anonymized log entry. A failure
// to write the log entry is logged and does not fail the call.
func (s *TelemetryService) Record(ctx context.Context, clientIP, userAgent string) (int64, error) {
	log := slogx.FromContext(ctx)

	stats, err := s.Counter.Increment(ctx)
	if err != nil {
		log.Error("failed to increment download counter", slog.Any("error", err))
		return 0, err
	}

	ipHash := s.anonymizer().HashIP(clientIP)
	entry := domain.DownloadLog{
		IPHash:       ipHash,
		UserAgent:    userAgent,
		DownloadedAt: s.now(),
	}
	if err := s.Logs.Append(ctx, entry); err != nil {
		log.Warn("failed to append download log",
			slog.String("ip_hash", ipHash),
			slog.Any("error", err),
		)
	}

	log.Debug("download recorded",
		slog.Int64("downloads", stats.TotalDownloads),
		slog.String("ip_hash", ipHash),
	)
	return stats.TotalDownloads, nil
}

func (s *TelemetryService) anonymizer() *cryptox.Anonymizer {
	if s.Anonymizer == nil {
		return cryptox.MustNewAnonymizer("")
	}
	return s.Anonymizer
}

func (s *TelemetryService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
