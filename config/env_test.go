package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_SECRET_KEY", testKey)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "local", cfg.MongoMode)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "auction", cfg.MongoDatabase)
	require.Equal(t, "products", cfg.MongoCollection)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.Equal(t, []byte(testKey), cfg.PasetoSecretKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASETO_SECRET_KEY", testKey)
	t.Setenv("MONGO_MODE", "atlas")
	t.Setenv("MONGO_URI_ATLAS", "mongodb+srv://cluster.example.net")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb+srv://cluster.example.net", cfg.MongoURI)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "short_key", env: map[string]string{"PASETO_SECRET_KEY": "short"}},
		{name: "atlas_without_uri", env: map[string]string{"PASETO_SECRET_KEY": testKey, "MONGO_MODE": "atlas", "MONGO_URI_ATLAS": ""}},
		{name: "bad_ttl", env: map[string]string{"PASETO_SECRET_KEY": testKey, "TOKEN_TTL": "forever"}},
		{name: "negative_timeout", env: map[string]string{"PASETO_SECRET_KEY": testKey, "REQUEST_TIMEOUT": "-1s"}},
		{name: "bad_redis_db", env: map[string]string{"PASETO_SECRET_KEY": testKey, "REDIS_DB": "zero"}},
		{name: "admin_without_password", env: map[string]string{"PASETO_SECRET_KEY": testKey, "ADMIN_EMAIL": "admin@example.com", "ADMIN_PASSWORD": ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
