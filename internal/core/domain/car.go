package domain

import "github.com/shopspring/decimal"

// CarStatus controls whether a car may be booked at all.
type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarBooked      CarStatus = "BOOKED"
	CarMaintenance CarStatus = "MAINTENANCE"
)

// CarCategory groups cars for filtering and search.
type CarCategory string

const (
	CategorySUV         CarCategory = "SUV"
	CategorySedan       CarCategory = "SEDAN"
	CategoryLuxury      CarCategory = "LUXURY"
	CategorySports      CarCategory = "SPORTS"
	CategoryConvertible CarCategory = "CONVERTIBLE"
)

// Car represents a vehicle in the rental fleet.
type Car struct {
	CarID        int64           `json:"carID"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	LicensePlate string          `json:"licensePlate"`
	Color        string          `json:"color"`
	Category     CarCategory     `json:"category"`
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

// FullName returns the car's display name, e.g. "BMW 7 Series".
func (c Car) FullName() string {
	return c.Brand + " " + c.Model
}

// IsBookable reports whether new bookings may be created for this car.
func (c Car) IsBookable() bool {
	return c.Status == CarAvailable
}

// ValidCarCategory reports whether s names a known category.
func ValidCarCategory(s string) bool {
	switch CarCategory(s) {
	case CategorySUV, CategorySedan, CategoryLuxury, CategorySports, CategoryConvertible:
		return true
	}
	return false
}

// ValidCarStatus reports whether s names a known car status.
func ValidCarStatus(s string) bool {
	switch CarStatus(s) {
	case CarAvailable, CarBooked, CarMaintenance:
		return true
	}
	return false
}
