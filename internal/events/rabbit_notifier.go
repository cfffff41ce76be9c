package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
)

// RabbitNotifier publishes booking events to a durable RabbitMQ queue on the
// default exchange. Messages are persistent so they survive broker restarts.
type RabbitNotifier struct {
	conn   *amqp.Connection
	queue  string
	logger *slog.Logger
}

// Ensure RabbitNotifier implements the BookingNotifier interface
var _ portssvc.BookingNotifier = (*RabbitNotifier)(nil)

// NewRabbitNotifier dials the broker and declares the queue once up front so
// misconfiguration fails at startup, not on first booking.
func NewRabbitNotifier(url, queue string, logger *slog.Logger) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return &RabbitNotifier{conn: conn, queue: queue, logger: logger}, nil
}

// Close releases the broker connection.
func (n *RabbitNotifier) Close() error {
	return n.conn.Close()
}

// publish marshals and sends one event. Channels are not safe for concurrent
// use, so each publish opens a short-lived channel on the shared connection.
func (n *RabbitNotifier) publish(ctx context.Context, msg BookingEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := n.conn.Channel()
	if err != nil {
		n.logger.Warn("Event publish failed: channel open",
			slog.String("event", msg.Event), slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = ch.Close() }()

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		n.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		n.logger.Warn("Event publish failed",
			slog.String("event", msg.Event),
			slog.String("booking_reference", msg.BookingReference),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (n *RabbitNotifier) BookingCreated(ctx context.Context, booking domain.Booking) error {
	return n.publish(ctx, newMessage(EventBookingCreated, booking, ""))
}

func (n *RabbitNotifier) BookingConfirmed(ctx context.Context, booking domain.Booking) error {
	return n.publish(ctx, newMessage(EventBookingConfirmed, booking, ""))
}

func (n *RabbitNotifier) BookingCancelled(ctx context.Context, booking domain.Booking, reason string) error {
	return n.publish(ctx, newMessage(EventBookingCancelled, booking, reason))
}

func (n *RabbitNotifier) BookingCompleted(ctx context.Context, booking domain.Booking) error {
	return n.publish(ctx, newMessage(EventBookingCompleted, booking, ""))
}
