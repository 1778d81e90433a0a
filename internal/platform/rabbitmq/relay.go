// Package rabbitmq relays domain events to a RabbitMQ topic exchange so
// external consumers (warehouse, analytics) can react to them.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
)

const (
	// Exchange is the topic exchange all bookstore events are published to.
	Exchange = "bookstore.events"

	connectRetries = 5
)

// Config holds the RabbitMQ connection configuration.
type Config struct {
	URL string
}

// Relay forwards domain events to RabbitMQ. It implements events.Handler so
// it can be subscribed on the in-memory bus for the event types that should
// leave the process.
//
// The relay runs outside database transactions: it only sees events after
// the transaction that produced them has committed.
type Relay struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewRelay connects to RabbitMQ with retry and declares the topic exchange.
func NewRelay(cfg Config, logger *slog.Logger) (*Relay, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < connectRetries; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		wait := time.Duration(i*i)*time.Second + time.Second
		logger.Warn("failed to connect to rabbitmq, retrying",
			slog.Duration("wait", wait), slog.Any("error", err))
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq after retries: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Relay{conn: conn, channel: channel, logger: logger}, nil
}

// Handle implements events.Handler by publishing the event as JSON.
func (r *Relay) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID(), err)
	}

	key := RoutingKey(event.EventType())
	if err := r.channel.PublishWithContext(ctx,
		Exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID(),
			Timestamp:    event.OccurredAt(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID(), err)
	}

	r.logger.Debug("relayed event to rabbitmq",
		slog.String("event_type", event.EventType().String()),
		slog.String("routing_key", key))
	return nil
}

// Close releases the channel and connection.
func (r *Relay) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// RoutingKey derives the topic routing key from an event type:
// "orders.OrderPlaced" becomes "orders.order_placed".
func RoutingKey(eventType events.EventType) string {
	parts := strings.SplitN(eventType.String(), ".", 2)
	if len(parts) != 2 {
		return strings.ToLower(eventType.String())
	}
	return parts[0] + "." + toSnake(parts[1])
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compile-time interface check.
var _ events.Handler = (*Relay)(nil)
