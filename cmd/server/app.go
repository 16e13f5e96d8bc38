package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/signup-api/internal/config"
	"github.com/phrazzld/signup-api/internal/platform/postgres"
	"github.com/phrazzld/signup-api/internal/service"
	"github.com/phrazzld/signup-api/internal/service/auth"
	"github.com/phrazzld/signup-api/internal/store"
)

// application holds the shared dependencies of the server and closes them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	accountService service.AccountService
}

// newApplication wires the PostgreSQL stores and the services on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	return assembleApplication(
		cfg,
		logger,
		db,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresAPIKeyStore(db, logger),
	)
}

// assembleApplication builds the services from the given stores.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	users store.UserStore,
	keys store.APIKeyStore,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	apiKeyService, err := service.NewAPIKeyService(keys, cfg.Auth.APIKeyPrefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.accountService, err = service.NewAccountService(users, apiKeyService, hasher, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	logger.Info("application initialized",
		"bcrypt_cost", hasher.Cost(),
		"api_key_prefix", apiKeyService.Prefix())
	return app, nil
}

// Run serves HTTP until ctx is canceled or the process is signaled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
