// Command api serves the account service.
//
// @title                       Account Service API
// @version                     1.0
// @description                 Registration, login, password management and role-gated user administration.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/account-service/internal/api"
	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/core/service"
	"github.com/99minutos/account-service/internal/infrastructure/config"
	"github.com/99minutos/account-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/account-service/internal/infrastructure/db/postgres"
	"github.com/99minutos/account-service/internal/infrastructure/db/redis"
	"github.com/99minutos/account-service/internal/infrastructure/queue"
	"github.com/99minutos/account-service/internal/infrastructure/security"
	"github.com/99minutos/account-service/pkg/logger"
)

const serviceName = "account-service"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: serviceName,
	})

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
	log.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		return err
	}
	log.Info().Msg("postgres schema up to date")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		ClientName: serviceName,
		PoolSize:   cfg.Redis.PoolSize,
		OpTimeout:  cfg.Redis.OpTimeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     serviceName,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	auditRepo := mongo.NewAuditRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Audit workers outlive the request context so buffered events are
	// flushed after the HTTP server has drained.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(auditCtx)
	defer func() {
		stopAudit()
		dispatcher.Wait()
	}()

	users := postgres.NewUserRepository(pool)
	tokens := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	revocations := redis.NewRevocationStore(rdb, tokens.TTL())
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	router := api.NewRouter(api.Deps{
		AuthService: service.NewAuthService(users, hasher, tokens, revocations, dispatcher, log),
		UserService: service.NewUserService(users, revocations, dispatcher, auditRepo, log),
		Tokens:      tokens,
		Revocations: revocations,
		HealthChecks: map[string]handler.HealthCheck{
			"postgres": handler.PostgresCheck(pool),
			"redis":    handler.RedisCheck(rdb),
			"mongodb":  handler.MongoCheck(mongoDB),
		},
		SecureCookie: cfg.IsProduction(),
		Log:          log,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down http server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
