package repositories

// RepositoryProvider aggregates the repository facades wired at startup.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	CarRepo     CarRepositoryFacade
	BookingRepo BookingRepositoryFacade
}
