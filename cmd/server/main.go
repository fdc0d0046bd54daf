package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/api"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/service"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/artifacts"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/db/mongo"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/db/redis"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/memory"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/notify"
	filestore "github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/store/file"
	mongostore "github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/infrastructure/store/mongo"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/pkg/config"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "home-price-api",
		Pretty:  cfg.Env == "development",
	})

	// Artifacts are fatal: no prediction can be served without them.
	store := artifacts.NewStore(cfg.Artifacts.ColumnsPath, cfg.Artifacts.ModelPath)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load model artifacts")
	}
	log.Info().Int("features", len(store.Schema())).Int("localities", len(store.Localities())).Msg("artifacts loaded")

	// User-store backend.
	var users ports.UserRepository
	switch cfg.Store.Backend {
	case "mongo":
		client, db, err := mongo.Connect(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		users = mongostore.NewUserRepository(db)
		log.Info().Str("database", cfg.Store.Mongo.Database).Msg("using mongodb user store")
	default:
		repo, err := filestore.NewUserRepository(cfg.Store.UsersFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open user store")
		}
		users = repo
		log.Info().Str("path", cfg.Store.UsersFile).Msg("using file user store")
	}

	// Login attempt limiter: Redis when configured, process memory otherwise.
	var rdb *goredis.Client
	var limiter ports.AttemptLimiter
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		rdb = client
		limiter = redis.NewAttemptLimiter(client, cfg.Login.MaxFailures, cfg.Login.FailureWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis attempt limiter")
	} else {
		limiter = memory.NewAttemptLimiter(cfg.Login.MaxFailures, cfg.Login.FailureWindow)
	}

	// OTP notifications: worker pool in front of the log-only delivery backend.
	dispatcher := notify.NewDispatcher(0, notify.NewLogNotifier(log), log)
	dispatcher.Start(ctx)

	sessions := service.NewSessionManager()
	authService := service.NewAuthService(users, sessions, limiter, dispatcher, service.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		OTPTTL:         cfg.OTP.TTL,
		MaxOTPAttempts: cfg.OTP.MaxAttempts,
		AdminUsername:  cfg.AdminUsername,
	}, log)
	estimator := service.NewEstimatorService(store, log)
	history := service.NewHistoryService(users, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Estimator: estimator,
		History:   history,
		Artifacts: store,
		Users:     users,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
