package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"SERVER_ADDRESS", "MONGODB_URI", "MONGODB_NAME",
	"JWT_SECRET", "IMAGE_DIR", "LOG_LEVEL",
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_NAME", "feedboard_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("IMAGE_DIR", "uploads")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.RunAddr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "feedboard_test", cfg.MongoName)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "uploads", cfg.ImageDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range keys {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, "feedboard", cfg.MongoName)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, "images", cfg.ImageDir)
	assert.Equal(t, "info", cfg.LogLevel)
}
