package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/genops-api/internal/api/middleware"
	"github.com/phrazzld/genops-api/internal/config"
	"github.com/phrazzld/genops-api/internal/platform/postgres"
	"github.com/phrazzld/genops-api/internal/service"
	"github.com/phrazzld/genops-api/internal/service/auth"
	"github.com/phrazzld/genops-api/internal/store"
)

// application holds the wired dependencies of a running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	accounts service.AccountService
	tasks    service.TaskService
	metrics  *middleware.Metrics
}

// appStores are the persistence dependencies of the services.
type appStores struct {
	users store.UserStore
	tasks store.TaskStore
	tx    store.Transactor
}

// newApplication wires the PostgreSQL stores into the services.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app, err := buildApplication(cfg, logger, appStores{
		users: postgres.NewPostgresUserStore(db, logger),
		tasks: postgres.NewPostgresTaskStore(db, logger),
		tx:    store.DBTransactor{DB: db},
	})
	if err != nil {
		return nil, err
	}
	app.db = db
	return app, nil
}

// buildApplication wires services on top of the given stores.
func buildApplication(cfg *config.Config, logger *slog.Logger, stores appStores) (*application, error) {
	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	accounts, err := service.NewAccountService(
		stores.users,
		stores.tx,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account service: %w", err)
	}

	tasks, err := service.NewTaskService(stores.tasks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task service: %w", err)
	}

	return &application{
		config:   cfg,
		logger:   logger,
		accounts: accounts,
		tasks:    tasks,
		metrics:  middleware.NewMetrics(),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	app.logger.Info("closing database connection")
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
