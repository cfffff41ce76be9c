package models

import "github.com/shopspring/decimal"

// CarStatus indicates whether a car row may receive new bookings.
type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarBooked      CarStatus = "BOOKED"
	CarMaintenance CarStatus = "MAINTENANCE"
)

// Car mirrors the cars table.
type Car struct {
	CarID        int64           `json:"carID"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	LicensePlate string          `json:"licensePlate"`
	Color        string          `json:"color"`
	Category     string          `json:"category"`
	PricePerDay  decimal.Decimal `json:"pricePerDay"`
	Status       CarStatus       `json:"status"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageURL"`
	Seats        int             `json:"seats"`
	Transmission string          `json:"transmission"`
	FuelType     string          `json:"fuelType"`
	Mileage      int             `json:"mileage"`
	AuditFields
}
