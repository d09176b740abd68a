package pgsql

import (
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := &BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:       base,
		StatusRepo:      newPgxStatusRepository(dbPool),
		EventRepo:       newPgxEventRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		BookRepo:        newPgxBookRepository(dbPool),
		LoanRepo:        newPgxLoanRepository(dbPool),
		ReservationRepo: newPgxReservationRepository(dbPool),
		HealthRepo:      base,
	}
}
