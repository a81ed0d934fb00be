package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/bootstrap"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/service"
	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
	"github.com/oksasatya/go-hexagonal-users/internal/router"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
	"github.com/oksasatya/go-hexagonal-users/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	store, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open user storage")
	}
	defer store.Close()

	integrations := bootstrap.OpenIntegrations(cfg, logger)
	defer integrations.Close()

	hasher := service.NewPasswordService(cfg.BcryptCost)

	var hooks []handlers.CreatedHook
	if integrations.Search != nil {
		hooks = append(hooks, integrations.Search)
	}
	if integrations.Welcome != nil {
		hooks = append(hooks, integrations.Welcome)
	}

	users := handlers.NewUserHandler(
		application.NewCreateUser(store.Users, hasher),
		application.NewGetUser(store.Users),
		application.NewListUsers(store.Users),
		integrations.Search,
		logger,
		hooks...,
	)

	r := router.NewEngine(router.EngineOptions{
		CORSOrigins: cfg.CORSOrigins(),
		AccessLog:   cfg.HTTPLogEnabled,
		Logger:      logger,
	}, router.Deps{
		Users:        users,
		Health:       handlers.NewHealthHandler(cfg.AppName, cfg.AppVersion),
		DebugMetrics: cfg.DebugMetricsEnabled,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}
