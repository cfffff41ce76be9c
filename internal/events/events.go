// Package events publishes booking lifecycle events to RabbitMQ so that
// downstream consumers (email, SMS, analytics) can react without coupling to
// the booking flow. Publish failures never affect the originating request.
package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
)

// Event names carried in BookingEventMessage.Event.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

// BookingEventMessage is the JSON payload published for every booking
// lifecycle transition.
type BookingEventMessage struct {
	Event              string               `json:"event"`
	BookingID          int64                `json:"bookingID"`
	BookingReference   string               `json:"bookingReference"`
	UserID             int64                `json:"userID"`
	CarID              int64                `json:"carID"`
	StartDate          string               `json:"startDate"`
	EndDate            string               `json:"endDate"`
	TotalPrice         decimal.Decimal      `json:"totalPrice"`
	Status             domain.BookingStatus `json:"status"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
	OccurredAt         time.Time            `json:"occurredAt"`
}

const wireDateFormat = "2006-01-02"

// newMessage builds the payload for a booking transition.
func newMessage(event string, booking domain.Booking, reason string) BookingEventMessage {
	return BookingEventMessage{
		Event:              event,
		BookingID:          booking.BookingID,
		BookingReference:   booking.BookingReference,
		UserID:             booking.UserID,
		CarID:              booking.CarID,
		StartDate:          booking.StartDate.Format(wireDateFormat),
		EndDate:            booking.EndDate.Format(wireDateFormat),
		TotalPrice:         booking.TotalPrice,
		Status:             booking.Status,
		CancellationReason: reason,
		OccurredAt:         time.Now().UTC(),
	}
}
