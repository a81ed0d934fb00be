package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/pkg/mailer"
)

// Outcome tells the consumer loop how to settle a delivery.
type Outcome int

const (
	Ack   Outcome = iota // sent
	Drop                 // poison message, nack without requeue
	Retry                // transient send failure, nack with requeue
)

const sendTimeout = 15 * time.Second

// ErrDeliveriesClosed means the broker closed the consumer channel; the
// worker must reconnect or exit.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// EmailConsumer renders queued EmailJobs and hands them to a Sender.
type EmailConsumer struct {
	Sender mailer.Sender
}

func NewEmailConsumer(s mailer.Sender) *EmailConsumer {
	return &EmailConsumer{Sender: s}
}

// Handle processes one message body. The error explains Drop and Retry.
func (c *EmailConsumer) Handle(ctx context.Context, body []byte) (Outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("decode email job: %w", err)
	}
	if job.To == "" {
		return Drop, fmt.Errorf("email job has no recipient")
	}
	job.FillRecipient()

	subject, text, html, err := mailer.Render(job)
	if err != nil {
		return Drop, err
	}

	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := c.Sender.Send(sctx, job.To, subject, text, html); err != nil {
		return Retry, fmt.Errorf("send to %s: %w", job.To, err)
	}
	return Ack, nil
}

// Serve settles deliveries until ctx is cancelled, which returns nil, or the
// channel is closed, which returns ErrDeliveriesClosed.
func (c *EmailConsumer) Serve(ctx context.Context, deliveries <-chan amqp.Delivery, logger logrus.FieldLogger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.settle(ctx, d, logger)
		}
	}
}

func (c *EmailConsumer) settle(ctx context.Context, d amqp.Delivery, logger logrus.FieldLogger) {
	outcome, err := c.Handle(ctx, d.Body)
	log := logger.WithFields(logrus.Fields{"message_id": d.MessageId, "delivery_tag": d.DeliveryTag})
	switch outcome {
	case Ack:
		_ = d.Ack(false)
	case Retry:
		log.WithError(err).Warn("send failed, requeueing")
		_ = d.Nack(false, true)
	default:
		log.WithError(err).Error("dropping email job")
		_ = d.Nack(false, false)
	}
}
