// Package messaging turns user lifecycle events into queued jobs.
package messaging

import (
	"context"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hexagonal-users/pkg/mailer/templates"
)

// JSONPublisher is satisfied by *helpers.Queue.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomePublisher enqueues a welcome email for every newly created user.
type WelcomePublisher struct {
	Pub JSONPublisher
	Cfg *config.Config
}

func NewWelcomePublisher(pub JSONPublisher, cfg *config.Config) *WelcomePublisher {
	return &WelcomePublisher{Pub: pub, Cfg: cfg}
}

func (w *WelcomePublisher) UserCreated(ctx context.Context, u application.UserResponse) error {
	if w.Pub == nil || w.Cfg == nil || !w.Cfg.MailSendEnabled {
		return nil
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(w.Cfg, u.Email, u.CreatedAt),
	}
	return w.Pub.PublishJSON(ctx, job)
}
