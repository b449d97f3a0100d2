package repositories

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerEntryReader defines read operations for income/expense entries
type LedgerEntryReader interface {
	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesBySession returns a session's entries in insertion order, optionally filtered by kind.
	ListEntriesBySession(ctx context.Context, sessionID string, kind *domain.EntryKind) ([]domain.LedgerEntry, error)
}

// LedgerEntryWriter defines write operations; callers hold the owning session's row lock.
type LedgerEntryWriter interface {
	// FindEntryByIDInTx re-reads an entry after its session has been locked.
	FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesBySessionInTx reads all entries of a session inside tx.
	ListEntriesBySessionInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.LedgerEntry, error)

	// SaveEntryInTx inserts a new entry.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// UpdateEntryInTx updates amount, description, classification and justification.
	UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// DeleteEntryInTx removes an entry.
	DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error
}

// LedgerEntryRepositoryFacade combines all entry-related repository interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
