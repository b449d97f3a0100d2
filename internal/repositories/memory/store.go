// Package memory is an in-process storage driver with the same transactional
// contract as the postgres repositories. Write transactions are serialized.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

var errForeignTx = errors.New("transaction does not belong to this store")

// Store holds all ledger data. Its zero value is not usable; call NewStore.
type Store struct {
	txMu sync.Mutex // held from Begin until Commit or Rollback

	mu             sync.RWMutex
	sessions       map[string]domain.CashSession
	entries        map[string]domain.LedgerEntry
	sessionEntries map[string][]string // entry IDs in insertion order
	employees      map[string]domain.Employee
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions:       make(map[string]domain.CashSession),
		entries:        make(map[string]domain.LedgerEntry),
		sessionEntries: make(map[string][]string),
		employees:      make(map[string]domain.Employee),
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SessionRepo:  &CashSessionRepository{txManager{store}},
		EntryRepo:    &LedgerEntryRepository{txManager{store}},
		EmployeeRepo: &EmployeeRepository{store: store},
	}
}

// memTx satisfies pgx.Tx so it can travel through the repository ports.
// Only the methods below are implemented; the embedded interface is nil.
type memTx struct {
	pgx.Tx
	store *Store
	undo  []func()
	done  bool
}

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.store.txMu.Unlock()
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.undo = nil
	t.store.txMu.Unlock()
	return nil
}

// txManager implements portsrepo.TransactionManager for a store.
type txManager struct {
	store *Store
}

func (m txManager) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	m.store.txMu.Lock()
	return &memTx{store: m.store}, nil
}

func (m txManager) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func (m txManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// own checks that tx is a live transaction of this store.
func (m txManager) own(tx pgx.Tx) (*memTx, error) {
	t, ok := tx.(*memTx)
	if !ok || t.store != m.store {
		return nil, errForeignTx
	}
	if t.done {
		return nil, pgx.ErrTxClosed
	}
	return t, nil
}
