package dto

import (
	"time"

	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCarRequest defines the data needed to add a car to the fleet.
type CreateCarRequest struct {
	Brand        string          `json:"brand" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	Year         int             `json:"year" binding:"required,min=1950"`
	LicensePlate string          `json:"licensePlate" binding:"required"`
	Color        string          `json:"color"`
	Category     string          `json:"category" binding:"required,oneof=SUV SEDAN LUXURY SPORTS CONVERTIBLE"`
	PricePerDay  decimal.Decimal `json:"pricePerDay" binding:"required"`
	Status       string          `json:"status" binding:"omitempty,oneof=AVAILABLE BOOKED MAINTENANCE"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageURL"`
	Seats        *int            `json:"seats"`
	Transmission string          `json:"transmission"`
	FuelType     string          `json:"fuelType"`
	Mileage      int             `json:"mileage"`
}

// UpdateCarRequest defines the data allowed for updating a car.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateCarRequest struct {
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	Year         *int             `json:"year"`
	LicensePlate *string          `json:"licensePlate"`
	Color        *string          `json:"color"`
	Category     *string          `json:"category"`
	PricePerDay  *decimal.Decimal `json:"pricePerDay"`
	Description  *string          `json:"description"`
	ImageURL     *string          `json:"imageURL"`
	Seats        *int             `json:"seats"`
	Transmission *string          `json:"transmission"`
	FuelType     *string          `json:"fuelType"`
	Mileage      *int             `json:"mileage"`
}

// UpdateCarStatusRequest changes only the car's status.
type UpdateCarStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE BOOKED MAINTENANCE"`
}

// CarResponse defines the data returned for a car.
type CarResponse struct {
	CarID        int64              `json:"carID"`
	Brand        string             `json:"brand"`
	Model        string             `json:"model"`
	FullName     string             `json:"fullName"`
	Year         int                `json:"year"`
	LicensePlate string             `json:"licensePlate"`
	Color        string             `json:"color,omitempty"`
	Category     domain.CarCategory `json:"category"`
	PricePerDay  decimal.Decimal    `json:"pricePerDay"`
	Status       domain.CarStatus   `json:"status"`
	Description  string             `json:"description,omitempty"`
	ImageURL     string             `json:"imageURL,omitempty"`
	Seats        int                `json:"seats"`
	Transmission string             `json:"transmission"`
	FuelType     string             `json:"fuelType"`
	Mileage      int                `json:"mileage"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ToCarResponse converts a domain.Car to its response DTO.
func ToCarResponse(c *domain.Car) CarResponse {
	return CarResponse{
		CarID:        c.CarID,
		Brand:        c.Brand,
		Model:        c.Model,
		FullName:     c.FullName(),
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		Color:        c.Color,
		Category:     c.Category,
		PricePerDay:  c.PricePerDay,
		Status:       c.Status,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Mileage:      c.Mileage,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCarResponses converts a slice of cars.
func ToCarResponses(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, ToCarResponse(&cars[i]))
	}
	return out
}
