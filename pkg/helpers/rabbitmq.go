package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue is a channel bound to one durable queue on the default exchange.
// The API publishes to it and the email worker consumes from it, so both
// sides declare the queue with identical settings.
type Queue struct {
	Name string
	conn *amqp.Connection
	ch   *amqp.Channel
}

// OpenQueue dials url and declares name as a durable, non-exclusive queue.
func OpenQueue(url, name string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	q := &Queue{Name: name, conn: conn}
	if q.ch, err = conn.Channel(); err != nil {
		q.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err = q.ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		q.Close()
		return nil, fmt.Errorf("declare %s: %w", name, err)
	}
	return q, nil
}

// Close is safe on a nil or partially opened queue.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}

// PublishJSON publishes body as a persistent JSON message.
func (q *Queue) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	}
	return q.ch.PublishWithContext(ctx, "", q.Name, false, false, msg)
}

// Consume starts a manual-ack consumer; prefetch caps unacked deliveries.
func (q *Queue) Consume(prefetch int) (<-chan amqp.Delivery, error) {
	if err := q.ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("qos: %w", err)
	}
	return q.ch.Consume(q.Name, "", false, false, false, false, nil)
}
