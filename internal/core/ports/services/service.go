package services

// ServiceContainer aggregates the service facades wired at startup,
// so handlers receive one dependency instead of many.
type ServiceContainer struct {
	Auth         AuthSvcFacade
	Booking      BookingSvcFacade
	Availability AvailabilitySvcFacade
	Car          CarSvcFacade
}
