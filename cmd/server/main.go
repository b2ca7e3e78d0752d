package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/tropicaldog17/orgledger/docs"
	"github.com/tropicaldog17/orgledger/internal/app"
	"github.com/tropicaldog17/orgledger/internal/config"
	"github.com/tropicaldog17/orgledger/internal/handlers"
	"github.com/tropicaldog17/orgledger/internal/logger"
	"github.com/tropicaldog17/orgledger/internal/services"
)

// @title Organization Ledger API
// @version 1.0
// @description Income and expense ledger with running monthly, yearly and lifetime totals.
// @BasePath /api
func main() {
	lg, err := logger.New()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer lg.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to start ledger", zap.Error(err))
	}
	defer a.Close()

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(a.Ledger, a.Location)
	reportingHandler := handlers.NewReportingHandler(a.Ledger, services.NewReportingService(a.Ledger), a.Location, time.Now)
	router := handlers.NewRouter(transactionHandler, reportingHandler, a.DB)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		refreshPeriods(gctx, a.Ledger, cfg.RefreshInterval, lg)
		return nil
	})

	if err := g.Wait(); err != nil {
		lg.Error("server stopped with error", zap.Error(err))
		return
	}
	lg.Info("server stopped")
}

// refreshPeriods keeps the month and year totals current across midnight so
// dashboards do not wait for the next mutation.
func refreshPeriods(ctx context.Context, ledger *services.Ledger, every time.Duration, lg *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ledger.RefreshIfStale(ctx) {
				lg.Info("period totals refreshed")
			}
		}
	}
}
