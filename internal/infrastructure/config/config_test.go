package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"STOREBOOKS_APP_NAME":          os.Getenv("STOREBOOKS_APP_NAME"),
		"STOREBOOKS_APP_ENV":           os.Getenv("STOREBOOKS_APP_ENV"),
		"STOREBOOKS_APP_PORT":          os.Getenv("STOREBOOKS_APP_PORT"),
		"STOREBOOKS_DATABASE_HOST":     os.Getenv("STOREBOOKS_DATABASE_HOST"),
		"STOREBOOKS_DATABASE_PORT":     os.Getenv("STOREBOOKS_DATABASE_PORT"),
		"STOREBOOKS_DATABASE_USER":     os.Getenv("STOREBOOKS_DATABASE_USER"),
		"STOREBOOKS_DATABASE_PASSWORD": os.Getenv("STOREBOOKS_DATABASE_PASSWORD"),
		"STOREBOOKS_DATABASE_DBNAME":   os.Getenv("STOREBOOKS_DATABASE_DBNAME"),
		"STOREBOOKS_DATABASE_SSLMODE":  os.Getenv("STOREBOOKS_DATABASE_SSLMODE"),
		"STOREBOOKS_JWT_SECRET":        os.Getenv("STOREBOOKS_JWT_SECRET"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storebooks-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storebooks", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOOKS_APP_PORT", "9000")
		os.Setenv("STOREBOOKS_DATABASE_HOST", "db.internal")
		os.Setenv("STOREBOOKS_DATABASE_PASSWORD", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "secret", cfg.Database.Password)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOOKS_APP_ENV", "production")
		os.Setenv("STOREBOOKS_DATABASE_PASSWORD", "secret")
		os.Setenv("STOREBOOKS_DATABASE_SSLMODE", "require")
		os.Setenv("STOREBOOKS_JWT_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "storebooks",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
