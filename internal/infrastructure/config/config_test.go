package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 4, cfg.AuditWorkers)
	assert.Equal(t, "accounts", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.OpTimeout)
	assert.Equal(t, uint64(8), cfg.Mongo.MaxPoolSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "secret",
		"ENV":            "production",
		"BCRYPT_COST":    "10",
		"TOKEN_TTL":      "15m",
		"REDIS_PASSWORD": "pw",
		"DATABASE_URL":   "postgres://u:p@db:5432/x",
		"AUDIT_WORKERS":  "8",
		"REDIS_TIMEOUT":  "250ms",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Postgres.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.OpTimeout)
	assert.Equal(t, uint64(12), cfg.Mongo.MaxPoolSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"cost too low", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "2"}},
		{"zero ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
