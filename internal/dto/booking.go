package dto

import (
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for booking dates (inclusive calendar dates).
const DateFormat = "2006-01-02"

// CreateBookingRequest defines the data needed to create a booking.
type CreateBookingRequest struct {
	CarID           int64  `json:"carID" binding:"required"`
	StartDate       string `json:"startDate" binding:"required"`
	EndDate         string `json:"endDate" binding:"required"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	Notes           string `json:"notes"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID          int64                `json:"bookingID"`
	BookingReference   string               `json:"bookingReference"`
	UserID             int64                `json:"userID"`
	CarID              int64                `json:"carID"`
	StartDate          string               `json:"startDate"`
	EndDate            string               `json:"endDate"`
	PickupLocation     string               `json:"pickupLocation,omitempty"`
	DropoffLocation    string               `json:"dropoffLocation,omitempty"`
	PricePerDay        decimal.Decimal      `json:"pricePerDay"`
	TotalDays          int                  `json:"totalDays"`
	TotalPrice         decimal.Decimal      `json:"totalPrice"`
	Status             domain.BookingStatus `json:"status"`
	Notes              string               `json:"notes,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// ToBookingResponse converts a domain.Booking to its response DTO.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:          b.BookingID,
		BookingReference:   b.BookingReference,
		UserID:             b.UserID,
		CarID:              b.CarID,
		StartDate:          b.StartDate.Format(DateFormat),
		EndDate:            b.EndDate.Format(DateFormat),
		PickupLocation:     b.PickupLocation,
		DropoffLocation:    b.DropoffLocation,
		PricePerDay:        b.PricePerDay,
		TotalDays:          b.TotalDays,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		Notes:              b.Notes,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// ToBookingResponses converts a slice of bookings.
func ToBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}
