package events

import (
	"context"
	"log/slog"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
)

// LogNotifier writes booking events to the structured log. It is used when no
// broker is configured, e.g. local development.
type LogNotifier struct {
	logger *slog.Logger
}

// Ensure LogNotifier implements the BookingNotifier interface
var _ portssvc.BookingNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) emit(msg BookingEventMessage) error {
	n.logger.Info("Booking event",
		slog.String("event", msg.Event),
		slog.String("booking_reference", msg.BookingReference),
		slog.Int64("user_id", msg.UserID),
		slog.Int64("car_id", msg.CarID),
		slog.String("status", string(msg.Status)))
	return nil
}

func (n *LogNotifier) BookingCreated(_ context.Context, booking domain.Booking) error {
	return n.emit(newMessage(EventBookingCreated, booking, ""))
}

func (n *LogNotifier) BookingConfirmed(_ context.Context, booking domain.Booking) error {
	return n.emit(newMessage(EventBookingConfirmed, booking, ""))
}

func (n *LogNotifier) BookingCancelled(_ context.Context, booking domain.Booking, reason string) error {
	return n.emit(newMessage(EventBookingCancelled, booking, reason))
}

func (n *LogNotifier) BookingCompleted(_ context.Context, booking domain.Booking) error {
	return n.emit(newMessage(EventBookingCompleted, booking, ""))
}
