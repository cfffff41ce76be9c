package mapping

import (
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/driveluxe/car_rental_backend/internal/models"
)

// ToModelCar converts a domain.Car for DB storage.
func ToModelCar(d domain.Car) models.Car {
	return models.Car{
		CarID:        d.CarID,
		Brand:        d.Brand,
		Model:        d.Model,
		Year:         d.Year,
		LicensePlate: d.LicensePlate,
		Color:        d.Color,
		Category:     string(d.Category),
		PricePerDay:  d.PricePerDay,
		Status:       models.CarStatus(d.Status),
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		Seats:        d.Seats,
		Transmission: d.Transmission,
		FuelType:     d.FuelType,
		Mileage:      d.Mileage,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainCar converts a stored car row back to the domain type.
func ToDomainCar(m models.Car) domain.Car {
	return domain.Car{
		CarID:        m.CarID,
		Brand:        m.Brand,
		Model:        m.Model,
		Year:         m.Year,
		LicensePlate: m.LicensePlate,
		Color:        m.Color,
		Category:     domain.CarCategory(m.Category),
		PricePerDay:  m.PricePerDay,
		Status:       domain.CarStatus(m.Status),
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		Seats:        m.Seats,
		Transmission: m.Transmission,
		FuelType:     m.FuelType,
		Mileage:      m.Mileage,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
