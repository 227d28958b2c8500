package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
	})
}

func TestLoadReadsDotEnvBeforeSnapshot(t *testing.T) {
	clearEnv(t, "PORT", "MONGO_DB_NAME", "JWT_SECRET")

	dir := t.TempDir()
	env := "PORT=9999\nMONGO_DB_NAME=wavely_test\nJWT_SECRET=file-secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "wavely_test", cfg.MongoDBName)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}

func TestLoadDefaultsWithoutDotEnv(t *testing.T) {
	clearEnv(t, "PORT", "MONGO_DB_NAME")
	t.Chdir(t.TempDir())

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "wavely", cfg.MongoDBName)
}

func TestLoadEnvVarBeatsDotEnv(t *testing.T) {
	clearEnv(t, "PORT")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("PORT", "7070")

	cfg := Load()
	assert.Equal(t, "7070", cfg.Port)
}
