package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/socialcore/config"
	"github.com/d60-Lab/socialcore/internal/api"
	"github.com/d60-Lab/socialcore/internal/api/handler"
	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/internal/repository"
	"github.com/d60-Lab/socialcore/internal/service"
	"github.com/d60-Lab/socialcore/pkg/database"
	"github.com/d60-Lab/socialcore/pkg/logger"
	"github.com/d60-Lab/socialcore/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.AppEnv}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTrace, err := telemetry.Init(ctx, "socialcore", cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("telemetry init failed", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		return
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Interaction{},
		&model.Invitation{},
	); err != nil {
		logger.Error("migrate", zap.Error(err))
		return
	}

	userRepo := repository.NewUserRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)

	feedSvc := service.NewFeedService(userRepo, interactionRepo)
	inviteSvc := service.NewInviteService(userRepo, inviteRepo)

	h := handler.NewHandler(feedSvc, inviteSvc)
	router := api.NewRouter(cfg, h)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if shutdownTrace != nil {
		if err := shutdownTrace(shutdownCtx); err != nil {
			logger.Warn("trace shutdown", zap.Error(err))
		}
	}
}
