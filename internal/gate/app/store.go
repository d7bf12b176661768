package app

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/downloadgate/internal/gate/store"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store/drivers/postgres"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store/drivers/sqlite"
)

// Supported DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, driver, dsn string) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch driver {
	case DriverSQLite:
		st, err = sqlite.NewStore(dsn)
	case DriverPostgres:
		st, err = postgres.NewStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	return st, nil
}
