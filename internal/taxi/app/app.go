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

	httpapi "github.com/aussiebroadwan/taxi/internal/taxi/http"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/internal/taxi/store/drivers/postgres"
	"github.com/aussiebroadwan/taxi/internal/taxi/store/drivers/sqlite"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application wires the store, services and HTTP server of the taxi service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	sessionService      *service.SessionService
	manufacturerService *service.ManufacturerService
	carService          *service.CarService
	driverService       *service.DriverService
	indexService        *service.IndexService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "taxi-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Backend: cfg.LogBackend,
	})
}

// New creates an Application with every dependency initialized and the
// schema migrated.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{cfg: cfg, logger: NewLogger(cfg)}

	cryptox.SetPepperPath(cfg.PepperFile)

	db, err := OpenStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	keyManager, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

// OpenStore connects the configured driver and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied", "driver", cfg.DatabaseDriver)
	return db, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Sessions exposes the identity store to the command line.
func (app *Application) Sessions() *service.SessionService {
	return app.sessionService
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("taxi service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taxi service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taxi service stopped")
	return nil
}

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Keys:   app.keyManager,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}
	app.manufacturerService = &service.ManufacturerService{Store: app.db}
	app.carService = &service.CarService{Store: app.db}
	app.driverService = &service.DriverService{Store: app.db}
	app.indexService = &service.IndexService{Store: app.db}
}

func (app *Application) initHTTP() error {
	html, err := httpapi.NewHTMLRenderer(httpapi.LoginPath)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		BuildVersion,
		app.db,
		&httpapi.NegotiatingRenderer{HTML: html},
		app.logger,
	)

	router.PageSize = app.cfg.PageSize
	router.CookieSecure = app.cfg.CookieSecure
	router.Limits = app.cfg.RateLimits
	router.SessionService = app.sessionService
	router.ManufacturerService = app.manufacturerService
	router.CarService = app.carService
	router.DriverService = app.driverService
	router.IndexService = app.indexService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
