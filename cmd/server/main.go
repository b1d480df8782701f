// @title           Task Manager API
// @version         1.0
// @description     Multi-user task tracking with JWT sessions.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/taskdesk/task-manager/internal/api"
	"github.com/taskdesk/task-manager/internal/api/handler"
	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/core/service"
	"github.com/taskdesk/task-manager/internal/infrastructure/config"
	"github.com/taskdesk/task-manager/internal/infrastructure/db/memory"
	"github.com/taskdesk/task-manager/internal/infrastructure/db/mongo"
	"github.com/taskdesk/task-manager/internal/infrastructure/db/postgres"
	"github.com/taskdesk/task-manager/internal/infrastructure/db/redis"
	"github.com/taskdesk/task-manager/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage is the repository pair plus lifecycle hooks of one driver.
type storage struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	ping  handler.PingFunc
	close func(context.Context) error
}

func main() {
	_ = godotenv.Load() // .env is optional

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "task-manager",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}()

	readiness := map[string]handler.Pinger{cfg.StorageDriver: store.ping}

	var limiter ports.RateLimiter
	if cfg.RateLimit.Enabled && cfg.Redis.Addr != "" {
		rdb, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = rdb.Limiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
		readiness["redis"] = rdb
	} else if cfg.RateLimit.Enabled {
		log.Warn().Msg("REDIS_ADDR not set, auth rate limiting disabled")
	}

	authSvc, err := service.NewAuthService(store.users, cfg.JWTSecret, domain.TokenTTL,
		service.WithHashCost(cfg.BcryptCost),
		service.WithLogger(log.With().Str("component", "auth").Logger()),
	)
	if err != nil {
		return err
	}
	taskSvc := service.NewTaskService(store.tasks, log.With().Str("component", "tasks").Logger())

	e := api.NewRouter(api.Deps{
		AuthService: authSvc,
		TaskService: taskSvc,
		RateLimiter: limiter,
		Readiness:   readiness,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited properly")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return &storage{
			users: s.Users(),
			tasks: s.Tasks(),
			ping:  s.Ping,
			close: func(context.Context) error { return s.Close() },
		}, nil
	case config.DriverMemory:
		s := memory.NewStore()
		return &storage{
			users: s.Users(),
			tasks: s.Tasks(),
			ping:  s.Ping,
			close: func(context.Context) error { return nil },
		}, nil
	default:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &storage{
			users: s.Users(),
			tasks: s.Tasks(),
			ping:  s.Ping,
			close: s.Close,
		}, nil
	}
}
