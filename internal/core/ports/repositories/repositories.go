package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	StatusRepo      StatusRepository
	EventRepo       EventRepository
	UserRepo        UserRepositoryFacade
	BookRepo        BookRepositoryFacade
	LoanRepo        LoanRepositoryFacade
	ReservationRepo ReservationRepositoryFacade
	HealthRepo      HealthChecker
}
