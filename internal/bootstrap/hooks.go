package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/messaging"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/search"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

// Integrations holds the optional outbound adapters. Nil fields are disabled.
type Integrations struct {
	Search  *search.UserIndex
	Welcome *messaging.WelcomePublisher
	closers []func()
}

func (i *Integrations) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
	i.closers = nil
}

// OpenIntegrations connects Elasticsearch and RabbitMQ when configured.
// A broker or cluster that cannot be reached is logged and left disabled so
// the API still serves its core operations.
func OpenIntegrations(cfg *config.Config, logger *logrus.Logger) *Integrations {
	in := &Integrations{}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	switch {
	case err != nil:
		helpers.LogWarn(logger, "elasticsearch disabled", err, nil)
	case es != nil:
		in.Search = search.NewUserIndex(es, cfg.ESUsersIndex)
		logger.WithField("index", cfg.ESUsersIndex).Info("user search enabled")
	}

	if cfg.RabbitMQURL != "" {
		q, err := helpers.OpenQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq disabled", err, logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
		} else {
			in.closers = append(in.closers, q.Close)
			in.Welcome = messaging.NewWelcomePublisher(q, cfg)
			logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("welcome emails enabled")
		}
	}

	return in
}
