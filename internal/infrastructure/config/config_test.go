package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"POSALPRO_APP_NAME":                os.Getenv("POSALPRO_APP_NAME"),
		"POSALPRO_APP_ENV":                 os.Getenv("POSALPRO_APP_ENV"),
		"POSALPRO_APP_PORT":                os.Getenv("POSALPRO_APP_PORT"),
		"POSALPRO_DATABASE_HOST":           os.Getenv("POSALPRO_DATABASE_HOST"),
		"POSALPRO_DATABASE_PORT":           os.Getenv("POSALPRO_DATABASE_PORT"),
		"POSALPRO_DATABASE_USER":           os.Getenv("POSALPRO_DATABASE_USER"),
		"POSALPRO_DATABASE_PASSWORD":       os.Getenv("POSALPRO_DATABASE_PASSWORD"),
		"POSALPRO_DATABASE_DBNAME":         os.Getenv("POSALPRO_DATABASE_DBNAME"),
		"POSALPRO_DATABASE_SSLMODE":        os.Getenv("POSALPRO_DATABASE_SSLMODE"),
		"POSALPRO_DATABASE_MAX_OPEN_CONNS": os.Getenv("POSALPRO_DATABASE_MAX_OPEN_CONNS"),
		"POSALPRO_DATABASE_MAX_IDLE_CONNS": os.Getenv("POSALPRO_DATABASE_MAX_IDLE_CONNS"),
		"POSALPRO_JWT_SECRET":              os.Getenv("POSALPRO_JWT_SECRET"),
		"POSALPRO_DASHBOARD_CACHE_TTL":     os.Getenv("POSALPRO_DASHBOARD_CACHE_TTL"),
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

		assert.Equal(t, "posalpro-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "posalpro", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_APP_NAME", "test-app")
		os.Setenv("POSALPRO_APP_PORT", "9000")
		os.Setenv("POSALPRO_DATABASE_HOST", "testdb.local")
		os.Setenv("POSALPRO_DATABASE_PORT", "5433")
		os.Setenv("POSALPRO_DATABASE_USER", "testuser")
		os.Setenv("POSALPRO_DATABASE_PASSWORD", "testpass")
		os.Setenv("POSALPRO_DATABASE_DBNAME", "testdb")
		os.Setenv("POSALPRO_DASHBOARD_CACHE_TTL", "2m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, 2*time.Minute, cfg.Dashboard.CacheTTL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("POSALPRO_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})
}

func TestLoadProductionValidation(t *testing.T) {
	keys := []string{
		"POSALPRO_APP_ENV",
		"POSALPRO_JWT_SECRET",
		"POSALPRO_DATABASE_PASSWORD",
		"POSALPRO_DATABASE_SSLMODE",
	}
	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
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
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_APP_ENV", "production")
		os.Setenv("POSALPRO_DATABASE_PASSWORD", "secure-password")
		os.Setenv("POSALPRO_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_APP_ENV", "production")
		os.Setenv("POSALPRO_JWT_SECRET", "short-secret")
		os.Setenv("POSALPRO_DATABASE_PASSWORD", "secure-password")
		os.Setenv("POSALPRO_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_APP_ENV", "production")
		os.Setenv("POSALPRO_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("POSALPRO_DATABASE_PASSWORD", "secure-password")
		os.Setenv("POSALPRO_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("POSALPRO_APP_ENV", "production")
		os.Setenv("POSALPRO_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("POSALPRO_DATABASE_PASSWORD", "secure-password")
		os.Setenv("POSALPRO_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "posalpro",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
