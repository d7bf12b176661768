package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store"
	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"
)

// CatalogService issues gate tokens and serves the catalog to holders of a
// valid one.
type CatalogService struct {
	Authority *gatetoken.Authority
	Catalog   store.Catalog

	// Timeout bounds each catalog read. Zero means no extra bound.
	Timeout time.Duration
}

// IssueToken mints a fresh gate token.
func (s *CatalogService) IssueToken(ctx context.Context) (string, error) {
	token, err := s.Authority.Issue()
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue gate token", slog.Any("error", err))
		return "", err
	}
	return token, nil
}

// CheckToken reports whether token is a valid, unexpired gate token. The
// reason for a rejection is logged, never returned to the caller.
func (s *CatalogService) CheckToken(ctx context.Context, token string) bool {
	if _, err := s.Authority.Inspect(token); err != nil {
		slogx.FromContext(ctx).Info("gate token rejected",
			slog.String("reason", err.Error()),
			slog.String("token_fp", cryptox.FingerprintToken(token)),
		)
		return false
	}
	return true
}

// ListCatalog returns the active catalog entries.
func (s *CatalogService) ListCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	entries, err := s.Catalog.ListActive(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list catalog", slog.Any("error", err))
		return nil, err
	}
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}
	return entries, nil
}
