package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "orgledger.db", cfg.SQLitePath)
	assert.Equal(t, "host=localhost port=5432 user=orgledger password=orgledger dbname=orgledger sslmode=disable", cfg.DSN())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("DB_HOST", "db.internal")

	cfg := NewConfig()
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/tmp/ledger.db", cfg.SQLitePath)
	assert.Equal(t, "db.internal", cfg.Host)
}

func TestConnectSQLite(t *testing.T) {
	database, err := Connect(&Config{Driver: DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.AutoMigrate())
	assert.NoError(t, database.Health())
	assert.True(t, database.Migrator().HasTable("ledger_transactions"))
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(&Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
