package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/downloadgate/internal/gate/http"
	"github.com/aussiebroadwan/downloadgate/internal/gate/metrics"
	"github.com/aussiebroadwan/downloadgate/internal/gate/service"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store"
	"github.com/aussiebroadwan/downloadgate/internal/gate/store/drivers/redis"
	"github.com/aussiebroadwan/downloadgate/pkg/captcha"
	"github.com/aussiebroadwan/downloadgate/pkg/cryptox"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
	"github.com/aussiebroadwan/downloadgate/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the gate service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies. db is nil when the data store is not configured;
	// counter is nil unless REDIS_URL is set.
	db      store.Store
	counter *redis.Counter
	metrics *metrics.Metrics

	// Services
	humanGateway     *service.HumanGateway
	catalogService   *service.CatalogService
	telemetryService *service.TelemetryService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application from cfg. Missing required configuration does
// not fail startup: the affected endpoints report it instead. A configured
// but unreachable database does.
func New(ctx context.Context, cfg Config) (*Application, error) {
	return NewWithLogger(ctx, cfg, slogx.New(slogx.Config{
		Service: "download-gate",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(ctx context.Context, cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	if missing := cfg.Missing(); len(missing) > 0 {
		app.logger.Warn("required configuration missing, affected endpoints will report it",
			slog.Any("missing", missing),
		)
	}
	if cfg.CaptchaBypass {
		app.logger.Warn("captcha bypass is enabled, gate tokens are issued without verification")
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initCounter(ctx); err != nil {
		app.closeStores()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeStores()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("download gate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down download gate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	err := app.closeStores()

	app.logger.Info("download gate stopped")
	return err
}

func (app *Application) closeStores() error {
	var errs []error
	if app.counter != nil {
		if err := app.counter.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initDatabase opens the configured store and applies migrations. It is a
// no-op when the data store keys are missing.
func (app *Application) initDatabase(ctx context.Context) error {
	if len(app.cfg.StoreMissing()) > 0 {
		return nil
	}

	db, err := OpenStore(ctx, app.cfg.DatabaseDriver, app.cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully",
		slog.String("driver", app.cfg.DatabaseDriver),
	)
	return nil
}

func (app *Application) initCounter(ctx context.Context) error {
	if app.cfg.RedisURL == "" || app.db == nil {
		return nil
	}

	counter, err := redis.NewCounter(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to initialize redis counter: %w", err)
	}
	app.counter = counter

	app.logger.Info("using redis download counter")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	app.humanGateway = &service.HumanGateway{
		Verifier: captcha.NewClient(app.cfg.CaptchaVerifyURL, app.cfg.UpstreamTimeout),
		Secret:   app.cfg.CaptchaSecret,
		Bypass:   app.cfg.CaptchaBypass,
	}

	authority := gatetoken.NewAuthority(app.cfg.GateSecret)
	authority.TTL = app.cfg.GateTokenTTL

	anonymizer, err := cryptox.NewAnonymizer(app.cfg.IPHashSalt)
	if err != nil {
		return err
	}
	if !anonymizer.Keyed() {
		app.logger.Warn("IP_HASH_SALT not set, IP hashes are unsalted")
	}

	app.catalogService = &service.CatalogService{
		Authority: authority,
		Timeout:   app.cfg.UpstreamTimeout,
	}
	app.telemetryService = &service.TelemetryService{Anonymizer: anonymizer}

	if app.db != nil {
		app.catalogService.Catalog = app.db.Catalog()
		app.telemetryService.Counter = app.db.Counter()
		app.telemetryService.Logs = app.db.DownloadLogs()
	}
	if app.counter != nil {
		app.telemetryService.Counter = app.counter
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.metrics, app.logger)

	router.GateMissing = app.cfg.Missing()
	router.StoreMissing = app.cfg.StoreMissing()
	if app.db != nil {
		router.Database = app.db
	}
	if app.counter != nil {
		router.Counter = app.counter
	}

	router.HumanGateway = app.humanGateway
	router.CatalogService = app.catalogService
	router.TelemetryService = app.telemetryService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
