package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range []string{"GO_ENV", "DATABASE_URL", "PORT", "JWT_SECRET", "JWT_EXPIRY_HOURS", "CORS_ALLOWED_ORIGINS", "BOOKING_HORIZON_DAYS", "RUN_MIGRATIONS", "DB_MAX_OPEN_CONNS"} {
		t.Setenv(k, vars[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultDBUrl, cfg.DBUrl)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 15*24*time.Hour, cfg.BookingHorizon)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, defaultDBMaxOpenConns, cfg.DBMaxOpenConns)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, map[string]string{
		"GO_ENV":               "production",
		"DATABASE_URL":         "postgres://db/portal",
		"PORT":                 "9000",
		"JWT_SECRET":           "s3cret",
		"JWT_EXPIRY_HOURS":     "2",
		"CORS_ALLOWED_ORIGINS": "https://portal.college.edu, http://localhost:5173 ,",
		"BOOKING_HORIZON_DAYS": "7",
		"RUN_MIGRATIONS":       "false",
		"DB_MAX_OPEN_CONNS":    "25",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://db/portal", cfg.DBUrl)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://portal.college.edu", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.BookingHorizon)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"production without secret", map[string]string{"GO_ENV": "production"}},
		{"bad horizon", map[string]string{"BOOKING_HORIZON_DAYS": "two weeks"}},
		{"zero expiry", map[string]string{"JWT_EXPIRY_HOURS": "0"}},
		{"bad bool", map[string]string{"RUN_MIGRATIONS": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			setEnv(t, tt.vars)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "slot_id", "s1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "s1", record["slot_id"])

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
