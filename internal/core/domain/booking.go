package domain

import (
	"fmt"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle status of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// BookingEvent is a requested transition of the booking state machine.
type BookingEvent string

const (
	EventConfirm  BookingEvent = "confirm"
	EventCancel   BookingEvent = "cancel"
	EventComplete BookingEvent = "complete"
)

// Transition computes the next status for a booking given its current status
// and a lifecycle event. It is a pure function: guards that depend on data
// beyond the status pair (ownership, start-date cutoff, conflict re-check)
// belong to the booking service. CANCELLED and COMPLETED are terminal.
func Transition(current BookingStatus, event BookingEvent) (BookingStatus, error) {
	switch event {
	case EventConfirm:
		if current == BookingPending {
			return BookingConfirmed, nil
		}
	case EventCancel:
		if current == BookingPending || current == BookingConfirmed {
			return BookingCancelled, nil
		}
	case EventComplete:
		if current == BookingConfirmed {
			return BookingCompleted, nil
		}
	default:
		return "", fmt.Errorf("%w: unknown event %q", apperrors.ErrInvalidState, event)
	}
	return "", fmt.Errorf("%w: cannot %s booking in status %s", apperrors.ErrInvalidState, event, current)
}

// Booking represents a car reservation over an inclusive date range.
// Bookings are never deleted; cancellation is a status transition.
type Booking struct {
	BookingID          int64           `json:"bookingID"`
	BookingReference   string          `json:"bookingReference"`
	UserID             int64           `json:"userID"`
	CarID              int64           `json:"carID"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	PickupLocation     string          `json:"pickupLocation"`
	DropoffLocation    string          `json:"dropoffLocation"`
	PricePerDay        decimal.Decimal `json:"pricePerDay"` // snapshot taken at creation, immutable
	TotalDays          int             `json:"totalDays"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	Status             BookingStatus   `json:"status"`
	Notes              string          `json:"notes"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	AuditFields
}

// IsActive reports whether the booking occupies the car (PENDING or CONFIRMED).
func (b Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// IsTerminal reports whether no further status transition is permitted.
func (b Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}

// Overlaps reports whether the booking's interval intersects [start, end],
// both ranges inclusive on both ends.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

// TotalDaysFor returns the inclusive day count of [start, end], minimum 1.
func TotalDaysFor(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// TotalPriceFor returns pricePerDay multiplied by the inclusive day count.
func TotalPriceFor(pricePerDay decimal.Decimal, totalDays int) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(int64(totalDays)))
}

// ValidBookingStatus reports whether s names a known booking status.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}
