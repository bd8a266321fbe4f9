// Package server initializes and runs the vault backend: it loads
// configuration, connects to Postgres, applies migrations, and serves the
// HTTP API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/drivenpass/drivenpass/internal/cryptox"
	"github.com/drivenpass/drivenpass/internal/logging"
	"github.com/drivenpass/drivenpass/internal/server/config"
	"github.com/drivenpass/drivenpass/internal/server/httpapi"
	"github.com/drivenpass/drivenpass/internal/server/repositories/repomanager"
	"github.com/drivenpass/drivenpass/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	credentials *services.CredentialService
	networks    *services.NetworkService
	repomanager repomanager.RepositoryManager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// the cipher is built once from config and shared by both secret services
	cipher, err := cryptox.New(cfg.CipherSecret)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		authService: services.NewAuthService(db, rm, cfg),
		credentials: services.NewCredentialService(db, rm, cipher),
		networks:    services.NewNetworkService(db, rm, cipher),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.authService,
		app.credentials,
		app.networks,
		app.repomanager.Sessions(app.db),
		app.config.JWTSecret,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
