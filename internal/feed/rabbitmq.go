package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"content_hub/internal/domain"
)

// RabbitMQ carries the change feed over an AMQP broker for consumers that
// cannot hold a direct database connection. Changes are published to a
// durable direct exchange with the table name as routing key; each
// subscription gets its own exclusive queue bound to one table.
type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func NewRabbitMQ(cfg RabbitMQConfig, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("connected to rabbitmq", "exchange", cfg.Exchange)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		logger:   logger.With("feed", "rabbitmq"),
	}, nil
}

// Publish forwards one change to the exchange. Used by the bridge that fans
// database notifications out to AMQP consumers.
func (r *RabbitMQ) Publish(ctx context.Context, change domain.Change) error {
	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		change.Table,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish change: %w", err)
	}

	r.logger.Debug("published change",
		"table", change.Table,
		"action", change.Action,
		"id", change.ID,
	)
	return nil
}

func (r *RabbitMQ) Subscribe(table string) (<-chan domain.Change, func(), error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		"",
		false,
		true,
		true,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, table, r.exchange, false, nil); err != nil {
		ch.Close()
		return nil, nil, fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, nil, fmt.Errorf("start consumer: %w", err)
	}

	out := make(chan domain.Change, 1)
	go func() {
		defer close(out)
		for d := range deliveries {
			var change domain.Change
			if err := json.Unmarshal(d.Body, &change); err != nil {
				r.logger.Warn("discarding malformed change message",
					"table", table,
					"error", err,
				)
				continue
			}
			select {
			case out <- change:
			default:
			}
		}
	}()

	release := func() { ch.Close() }
	return out, release, nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
