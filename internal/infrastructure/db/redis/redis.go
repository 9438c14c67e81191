package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	// The auth guard reads a revocation mark on every request, so a slow
	// Redis must fail fast rather than stall the request.
	defaultOpTimeout = 500 * time.Millisecond
)

// Config captures the settings of the revocation store connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// ClientName shows up in CLIENT LIST, e.g. "account-service".
	ClientName string
	// PoolSize defaults to go-redis' own default when zero.
	PoolSize    int
	DialTimeout time.Duration
	// OpTimeout bounds every read and write.
	OpTimeout time.Duration
}

func (c Config) options() *redis.Options {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	op := c.OpTimeout
	if op <= 0 {
		op = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   c.ClientName,
		PoolSize:     c.PoolSize,
		DialTimeout:  dial,
		ReadTimeout:  op,
		WriteTimeout: op,
	}
}

// Connect opens the client backing token revocation and pings it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
