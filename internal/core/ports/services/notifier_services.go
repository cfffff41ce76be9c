package services

import (
	"context"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// BookingNotifier receives booking lifecycle events. Delivery is
// fire-and-forget: the ledger never waits on it and a failed emit
// must not roll back the state change that produced the event.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, booking domain.Booking) error
	BookingConfirmed(ctx context.Context, booking domain.Booking) error
	BookingCancelled(ctx context.Context, booking domain.Booking, reason string) error
	BookingCompleted(ctx context.Context, booking domain.Booking) error
}
