package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/messaging"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
)

const prefetch = 16

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false, email worker not started")
		return
	}
	switch {
	case cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "":
		logger.Fatal("RabbitMQ not configured")
	case cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "":
		logger.Fatal("Mailgun not configured")
	}

	q, err := helpers.OpenQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		logger.WithError(err).Fatal("open queue")
	}
	defer q.Close()

	deliveries, err := q.Consume(prefetch)
	if err != nil {
		q.Close()
		logger.WithError(err).Fatal("consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := messaging.NewEmailConsumer(mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender))
	logger.WithField("queue", q.Name).Info("email worker listening")

	// Serve returns an error only when the broker dropped us; exit non-zero so
	// the supervisor restarts the worker.
	if err := consumer.Serve(ctx, deliveries, logger); err != nil {
		q.Close()
		logger.WithError(err).Fatal("email worker stopped consuming")
	}
	logger.Info("shutting down")
}
