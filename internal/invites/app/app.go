package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/invites/internal/invites/http"
	"github.com/aussiebroadwan/invites/internal/invites/mail"
	"github.com/aussiebroadwan/invites/internal/invites/obs"
	"github.com/aussiebroadwan/invites/internal/invites/service"
	"github.com/aussiebroadwan/invites/internal/invites/store"
	"github.com/aussiebroadwan/invites/internal/invites/store/drivers/sqlite"
	"github.com/aussiebroadwan/invites/pkg/cryptox"
	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the invitation service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	metrics  *obs.Metrics
	mailer   service.Mailer

	// Services
	accountService *service.AccountService
	groupService   *service.GroupService
	lifecycle      *service.InvitationLifecycle
	keyRefresher   *KeyRefresher

	// HTTP server
	server *http.Server
	router *httpapi.Router

	releaseOnce sync.Once
	releaseErr  error
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "invites-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: obs.NewMetrics(BuildVersion),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initKeys()
	if err := app.initMail(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.keyRefresher.Start()

	app.logger.Info("invites service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			_ = app.release()
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down invites service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.release(); err != nil {
		return err
	}

	app.logger.Info("invites service stopped")
	return nil
}

// release stops the key refresher and closes the database. It runs once no
// matter how the server stopped.
func (app *Application) release() error {
	app.releaseOnce.Do(func() {
		app.keyRefresher.Stop()

		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			app.releaseErr = err
		}
	})
	return app.releaseErr
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initKeys loads the verification keys. A failed first load is not fatal:
// the refresher retries and /readyz reports the service as degraded.
func (app *Application) initKeys() {
	app.keys = jwtx.NewKeySet()
	app.verifier = jwtx.NewCommonEdDSA(app.keys, jwtx.VerifyOptions{
		Issuer:   app.cfg.Issuer,
		Audience: app.cfg.Audience,
		Leeway:   30 * time.Second,
	})
	app.keyRefresher = NewKeyRefresher(
		app.keys,
		app.cfg.JWKSURL,
		app.cfg.JWKSFile,
		app.logger,
		app.cfg.JWKSRefreshInterval,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.keyRefresher.Refresh(ctx); err != nil {
		app.logger.Warn("initial verification key load failed", "error", err)
	}
}

// initMail selects the mail driver
func (app *Application) initMail() error {
	renderer, err := mail.NewRenderer()
	if err != nil {
		return err
	}

	switch app.cfg.MailDriver {
	case "smtp":
		m, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
			Timeout:  app.cfg.MailTimeout,
		}, renderer)
		if err != nil {
			return err
		}
		app.mailer = m
	default:
		app.logger.Warn("using log mail driver, invitation emails will not be delivered")
		app.mailer = &mail.LogMailer{Renderer: renderer}
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	clock := service.SystemClock{}
	caps := service.DefaultScopeCapabilities()

	app.accountService = &service.AccountService{
		Store:             app.db,
		Clock:             clock,
		MinPasswordLength: app.cfg.PasswordMinLength,
	}
	app.groupService = &service.GroupService{
		Store:        app.db,
		Clock:        clock,
		Capabilities: caps,
	}
	app.lifecycle = &service.InvitationLifecycle{
		Invitations: &service.InvitationStore{
			Store:    app.db,
			Accounts: app.accountService,
			Tokens:   service.RandomTokens{},
			Clock:    clock,
		},
		Accounts:     app.accountService,
		Groups:       app.groupService,
		Mailer:       app.mailer,
		Capabilities: caps,
		Transactor: &service.StoreTransactor{
			Store:             app.db,
			Clock:             clock,
			MinPasswordLength: app.cfg.PasswordMinLength,
		},
		Recorder: app.metrics,
		Config: service.LifecycleConfig{
			DaysToExpiry:      app.cfg.DaysToExpiry,
			ForceRequireGroup: app.cfg.ForceRequireGroup,
			MailTimeout:       app.cfg.MailTimeout,
			SiteURL:           app.cfg.SiteURL,
		},
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.Lifecycle = app.lifecycle
	router.Groups = app.groupService
	router.LoginURL = app.cfg.LoginURL
	router.LoginBackURL = app.cfg.LoginBackURL
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
