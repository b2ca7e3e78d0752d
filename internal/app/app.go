// Package app assembles a ledger from configuration. It is shared by the HTTP
// server and the ledgerctl command.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tropicaldog17/orgledger/internal/config"
	"github.com/tropicaldog17/orgledger/internal/db"
	"github.com/tropicaldog17/orgledger/internal/repositories"
	"github.com/tropicaldog17/orgledger/internal/services"
)

// App is a loaded ledger together with the database behind it.
type App struct {
	DB       *db.DB
	Ledger   *services.Ledger
	Location *time.Location
}

// Open connects to the configured database, prepares the sqlite schema when
// needed and loads the persisted transactions into a new ledger.
func Open(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	if cfg.DB.Driver == db.DriverSQLite {
		if err := database.AutoMigrate(); err != nil {
			database.Close()
			return nil, err
		}
	}
	lg.Info("database connection established", zap.String("driver", cfg.DB.Driver))

	repo := repositories.NewTransactionRepository(database, loc)
	ledger := services.NewLedger(repo, lg.Named("ledger"), services.LedgerConfig{
		Location:       loc,
		PersistTimeout: cfg.PersistTimeout,
	})
	if err := ledger.Reload(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return &App{DB: database, Ledger: ledger, Location: loc}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
