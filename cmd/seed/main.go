package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/bootstrap"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/service"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

// seed creates a demo account through the same use case as the API, so the
// password rules and uniqueness checks apply. Reruns are harmless.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	store, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open user storage")
	}
	defer store.Close()

	email := envOr("SEED_EMAIL", "demo@example.com")
	password := envOr("SEED_PASSWORD", "DemoPassword123!")

	create := application.NewCreateUser(store.Users, service.NewPasswordService(cfg.BcryptCost))
	res, err := create.Execute(ctx, application.CreateUserRequest{Email: email, Password: password})
	switch {
	case errors.Is(err, application.ErrUserAlreadyExists):
		logger.WithField("email", email).Info("seed user already exists")
	case err != nil:
		logger.WithError(err).Fatal("failed to seed user")
	default:
		logger.WithFields(logrus.Fields{"id": res.ID.String(), "email": res.Email}).Info("seeded user")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
