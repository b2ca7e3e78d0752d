package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tropicaldog17/orgledger/internal/db"
	"github.com/tropicaldog17/orgledger/internal/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding numbered .sql migrations")
	flag.Parse()

	_ = godotenv.Load()

	lg, err := logger.New()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer lg.Sync()

	config := db.NewConfig()
	sqlDB, err := sql.Open("postgres", config.DSN())
	if err != nil {
		lg.Fatal("failed to open database", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		lg.Fatal("failed to ping database", zap.Error(err))
	}

	migrations, err := db.LoadMigrations(*dir)
	if err != nil {
		lg.Fatal("failed to load migrations", zap.Error(err))
	}

	applied, err := db.Migrate(context.Background(), sqlDB, migrations)
	for _, name := range applied {
		lg.Info("migration applied", zap.String("file", name))
	}
	if err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	lg.Info("all migrations completed", zap.Int("applied", len(applied)))
}
