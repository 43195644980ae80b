// Package main runs the party board HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fomo-events/backend/config"
	"github.com/fomo-events/backend/internal/auth"
	"github.com/fomo-events/backend/internal/images"
	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/internal/organizations"
	"github.com/fomo-events/backend/internal/parties"
	"github.com/fomo-events/backend/internal/reviews"
	"github.com/fomo-events/backend/pkg/database"
	"github.com/fomo-events/backend/pkg/redis"
	"github.com/fomo-events/backend/pkg/storage"
	"github.com/fomo-events/backend/pkg/utils"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	if err := database.Migrate(cfg.Database.DSN(), logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var imageStore images.Store
	if cfg.AWS.Region != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ImagesBucket:         cfg.AWS.ImagesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			imageStore = s3Client
		}
	}

	if err := utils.RegisterValidations(); err != nil {
		logger.Fatal("validations", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.Session.Secret, cfg.Session.ExpireHours)
	sessionStore := auth.NewRedisSessionStore(rdb.Client)

	authRepo := auth.NewRepository(pool)
	orgRepo := organizations.NewRepository(pool)
	partyRepo := parties.NewRepository(pool)
	reviewRepo := reviews.NewRepository(pool)

	router := newRouter(routes{
		sessions: middleware.Sessions{JWT: jwtService, Revoked: sessionStore, CookieName: cfg.Session.CookieName},
		orgs:     orgRepo,
		auth: auth.NewHandler(authRepo, utils.NewPasswordHasher(cfg.App.PasswordHashIterations), jwtService, sessionStore,
			auth.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}, logger),
		organizations: organizations.NewHandler(orgRepo, partyRepo, logger),
		parties:       parties.NewHandler(partyRepo, reviewRepo, cfg.App.HomepagePartyCount, logger),
		reviews:       reviews.NewHandler(reviewRepo, partyRepo, logger),
		images:        images.NewHandler(imageStore, logger),
		corsOrigins:   cfg.Server.CORSAllowedOrigins,
		logger:        logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
