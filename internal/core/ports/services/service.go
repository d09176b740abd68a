package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Status      StatusCatalogSvc
	User        UserSvcFacade
	Book        BookSvcFacade
	Loan        LoanSvcFacade
	Reservation ReservationSvcFacade
	Report      ReportSvc
	Auth        AuthSvc
	Health      HealthSvc
}
