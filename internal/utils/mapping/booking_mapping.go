package mapping

import (
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/driveluxe/car_rental_backend/internal/models"
)

// ToModelBooking converts a domain.Booking for DB storage.
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:          d.BookingID,
		BookingReference:   d.BookingReference,
		UserID:             d.UserID,
		CarID:              d.CarID,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		PickupLocation:     d.PickupLocation,
		DropoffLocation:    d.DropoffLocation,
		PricePerDay:        d.PricePerDay,
		TotalDays:          d.TotalDays,
		TotalPrice:         d.TotalPrice,
		Status:             models.BookingStatus(d.Status),
		Notes:              d.Notes,
		CancelledAt:        d.CancelledAt,
		CancellationReason: d.CancellationReason,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainBooking converts a stored booking row back to the domain type.
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:          m.BookingID,
		BookingReference:   m.BookingReference,
		UserID:             m.UserID,
		CarID:              m.CarID,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		PickupLocation:     m.PickupLocation,
		DropoffLocation:    m.DropoffLocation,
		PricePerDay:        m.PricePerDay,
		TotalDays:          m.TotalDays,
		TotalPrice:         m.TotalPrice,
		Status:             domain.BookingStatus(m.Status),
		Notes:              m.Notes,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
