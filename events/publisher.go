// Package events publishes issue lifecycle events to RabbitMQ so
// downstream consumers (dispatch boards, SMS gateways) can react
// without polling. Publishing is optional and best-effort: the portal
// runs fine with no broker configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"smartcity-be/issues"
)

const defaultQueue = "issue_updates"

type Publisher struct {
	ch    *amqp.Channel
	queue string
	log   zerolog.Logger
}

// Connect dials the broker and declares the durable queue. The
// returned close func releases the channel and connection.
func Connect(uri, queue string, log zerolog.Logger) (*Publisher, func(), error) {
	if queue == "" {
		queue = defaultQueue
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	closeFn := func() {
		ch.Close()
		conn.Close()
	}
	return &Publisher{ch: ch, queue: queue, log: log}, closeFn, nil
}

// Notify implements issues.Notifier. Failures are logged and dropped;
// an unavailable broker must never fail a state transition.
func (p *Publisher) Notify(ctx context.Context, event issues.Event) {
	if p == nil || p.ch == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("marshal issue event")
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		p.log.Error().Err(err).Int64("issue", event.IssueID).Str("action", event.Action).
			Msg("publish issue event")
	}
}
