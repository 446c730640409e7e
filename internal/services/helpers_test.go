package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"todo-panel/internal/config"
	"todo-panel/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a throwaway sqlite database
func setupTestDB(t *testing.T) *config.Config {
	tmpDir := os.TempDir()
	testDBPath := fmt.Sprintf("%s/todopanel_test_%d.db", tmpDir, time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "10m",
			Issuer:    "todo-panel-test",
		},
		Security: config.SecurityConfig{
			// Minimum cost keeps the hashing-heavy tests fast.
			BcryptCost: 4,
			Pepper:     "test-pepper",
			Lockout: config.LockoutConfig{
				MaxAttempts:     5,
				LockoutDuration: "10m",
				StaleAfter:      "24h",
			},
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	return cfg
}

// cleanupTestDB cleans up the test database
func cleanupTestDB(t *testing.T, cfg *config.Config) {
	if models.DB != nil {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		if cfg != nil && cfg.Database.Type == "sqlite" {
			os.Remove(cfg.Database.SQLite.Path)
		}
	}
	models.DB = nil
}

// closeTestDB severs the underlying connection so store operations fail,
// for exercising degraded-mode behavior.
func closeTestDB(t *testing.T) {
	sqlDB, err := models.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func boolPtr(b bool) *bool {
	return &b
}
