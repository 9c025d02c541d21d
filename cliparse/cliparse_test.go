// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable ParseFlags reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "MONGODB_URI", "MONGODB_DATABASE", "CORS_ORIGIN", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"--env-file", ""})
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, DefaultSQLitePath, cfg.DatabaseURL)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("CORS_ORIGIN", "http://localhost:3000")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "postgres://test", cfg.DatabaseURL)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db", "--log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port, "CLI should override env")
	assert.Equal(t, "test.db", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_Mongo(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-t", "mongo"})
	require.NoError(t, err)
	assert.Equal(t, DefaultMongoURI, cfg.DatabaseURL)
	assert.Equal(t, DefaultMongoDatabase, cfg.MongoDatabase)

	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "forms")
	cfg, err = ParseFlags([]string{"--database-type", "MONGO"})
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.DatabaseType)
	assert.Equal(t, "mongodb://db:27017", cfg.DatabaseURL)
	assert.Equal(t, "forms", cfg.MongoDatabase)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"unknown database type", []string{"-t", "oracle"}, nil},
		{"bad PORT env", nil, map[string]string{"PORT": "abc"}},
		{"port out of range", []string{"-p", "70000"}, nil},
		{"bad log level", []string{"--log-level", "loud"}, nil},
		{"unknown flag", []string{"--admin-salt", "x"}, nil},
		{"missing explicit env file", []string{"--env-file", "does-not-exist.env"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("CORS_ORIGIN")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nCORS_ORIGIN=https://forms.example\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("CORS_ORIGIN")
	})

	cfg, err := ParseFlags([]string{"--env-file", path})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "https://forms.example", cfg.CORSOrigin)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("nope")
	assert.Error(t, err)
}
