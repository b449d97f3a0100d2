package repositories

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CashSessionReader defines read operations for cash session data
type CashSessionReader interface {
	// FindSessionByID retrieves a session by ID without its entries.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSessionByEmployee returns the employee's open session or apperrors.ErrNotFound.
	FindOpenSessionByEmployee(ctx context.Context, employeeID string) (*domain.CashSession, error)

	// ListSessions returns sessions newest-first, optionally for one employee, using token-based pagination.
	ListSessions(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.CashSession, *string, error)
}

// CashSessionWriter defines the transactional write path for sessions
type CashSessionWriter interface {
	// LockEmployeeInTx serializes session creation for one employee until tx ends.
	LockEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) error

	// FindOpenSessionByEmployeeInTx is FindOpenSessionByEmployee inside tx.
	FindOpenSessionByEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.CashSession, error)

	// SaveSessionInTx inserts a new open session. A concurrent open for the same
	// employee surfaces as *apperrors.AlreadyOpenError.
	SaveSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error

	// FindSessionByIDForUpdate loads a session and row-locks it until tx ends.
	FindSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error)

	// CloseSessionInTx writes the terminal state of a session.
	CloseSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error
}

// CashSessionRepositoryFacade combines all session-related repository interfaces
type CashSessionRepositoryFacade interface {
	CashSessionReader
	CashSessionWriter
}

// CashSessionRepositoryWithTx extends CashSessionRepositoryFacade with transaction capabilities
type CashSessionRepositoryWithTx interface {
	CashSessionRepositoryFacade
	TransactionManager
}
