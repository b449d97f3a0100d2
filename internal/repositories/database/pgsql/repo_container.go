package pgsql

import (
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SessionRepo:  newPgxCashSessionRepository(dbPool),
		EntryRepo:    newPgxLedgerEntryRepository(dbPool),
		EmployeeRepo: newPgxEmployeeRepository(dbPool),
	}
}
