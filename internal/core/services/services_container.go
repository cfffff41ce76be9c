package services

import (
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	portssvc "github.com/driveluxe/car_rental_backend/internal/core/ports/services"
	"github.com/driveluxe/car_rental_backend/internal/platform/config"
)

// NewServiceContainer wires all services with their repository and notifier
// dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, notifier portssvc.BookingNotifier) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:         NewAuthService(repos.UserRepo, cfg),
		Booking:      NewBookingService(repos.BookingRepo, repos.CarRepo, notifier),
		Availability: NewAvailabilityService(repos.BookingRepo, repos.CarRepo),
		Car:          NewCarService(repos.CarRepo),
	}
}
