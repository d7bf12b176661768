package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/downloadgate/internal/gate/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose narrow sub-repositories.
type Store interface {
	Catalog() Catalog
	Counter() Counter
	DownloadLogs() DownloadLogs

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Catalog interface {
	// ListActive returns rows with is_active set, ordered by sort_order
	// ascending then updated_at descending.
	ListActive(ctx context.Context) ([]domain.CatalogEntry, error)
}

// Counter is the download counter aggregate. Both methods lazily create the
// counter row when none exists; if several rows exist the oldest one is used.
//
// Drivers document whether Increment is atomic. The sqlite driver performs a
// read-modify-write, so concurrent increments can be lost; the postgres and
// redis drivers use an atomic increment.
type Counter interface {
	Read(ctx context.Context) (domain.DownloadStats, error)
	Increment(ctx context.Context) (domain.DownloadStats, error)
}

type DownloadLogs interface {
	// Append writes one anonymized download record.
	Append(ctx context.Context, l domain.DownloadLog) error
}
