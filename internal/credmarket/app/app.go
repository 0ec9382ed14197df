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

	httpapi "github.com/aussiebroadwan/credmarket/internal/credmarket/http"
	"github.com/aussiebroadwan/credmarket/pkg/cryptox"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application is the onboarding server with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	deps     *Deps
	services *Services

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg, "credmarket"),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	signer, err := LoadSigner(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := OpenDeps(context.Background(), cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.deps = deps
	app.services = NewServices(cfg, deps, signer, app.logger)

	app.initHTTP()

	return app, nil
}

// NewLogger builds the process logger for service.
func NewLogger(cfg Config, service string) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: service,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.services.Housekeeping.Start()

	app.logger.Info("credmarket starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.services.Housekeeping.Stop()
			app.deps.Close(app.logger)
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

// Shutdown stops accepting requests, then drains the email queue before
// closing the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down credmarket...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.services.Housekeeping.Stop()
	app.deps.Close(app.logger)

	app.logger.Info("credmarket stopped")
	return nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.deps.Store,
		app.deps.Revocations,
		httpapi.SessionCookie{Secure: app.cfg.CookieSecure},
		app.logger,
	)

	router.CompanyService = app.services.Companies
	router.UserService = app.services.Users
	router.SignupService = app.services.Signup
	router.SessionService = app.services.Sessions
	router.MFAService = app.services.MFA
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
