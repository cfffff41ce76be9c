package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus indicates the lifecycle state of a booking row.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking mirrors the bookings table.
type Booking struct {
	BookingID          int64           `json:"bookingID"`
	BookingReference   string          `json:"bookingReference"`
	UserID             int64           `json:"userID"`
	CarID              int64           `json:"carID"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	PickupLocation     string          `json:"pickupLocation"`
	DropoffLocation    string          `json:"dropoffLocation"`
	PricePerDay        decimal.Decimal `json:"pricePerDay"`
	TotalDays          int             `json:"totalDays"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	Status             BookingStatus   `json:"status"`
	Notes              string          `json:"notes"`
	CancelledAt        *time.Time      `json:"cancelledAt"`
	CancellationReason string          `json:"cancellationReason"`
	AuditFields
}
