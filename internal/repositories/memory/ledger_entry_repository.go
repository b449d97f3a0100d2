package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type LedgerEntryRepository struct {
	txManager
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*LedgerEntryRepository)(nil)

func (r *LedgerEntryRepository) FindEntryByID(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.find(entryID)
}

func (r *LedgerEntryRepository) ListEntriesBySession(_ context.Context, sessionID string, kind *domain.EntryKind) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.list(sessionID, kind), nil
}

func (r *LedgerEntryRepository) FindEntryByIDInTx(_ context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	if _, err := r.own(tx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.find(entryID)
}

func (r *LedgerEntryRepository) ListEntriesBySessionInTx(_ context.Context, tx pgx.Tx, sessionID string) ([]domain.LedgerEntry, error) {
	if _, err := r.own(tx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.list(sessionID, nil), nil
}

func (r *LedgerEntryRepository) SaveEntryInTx(_ context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	t, err := r.own(tx)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sessions[entry.SessionID]; !ok {
		return apperrors.NewNotFoundError("cash session " + entry.SessionID)
	}
	if _, exists := r.store.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
	}

	previousOrder := r.store.sessionEntries[entry.SessionID]
	r.store.entries[entry.EntryID] = entry
	r.store.sessionEntries[entry.SessionID] = append(append([]string(nil), previousOrder...), entry.EntryID)
	t.undo = append(t.undo, func() {
		delete(r.store.entries, entry.EntryID)
		r.store.sessionEntries[entry.SessionID] = previousOrder
	})
	return nil
}

func (r *LedgerEntryRepository) UpdateEntryInTx(_ context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	t, err := r.own(tx)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	previous, ok := r.store.entries[entry.EntryID]
	if !ok {
		return apperrors.NewNotFoundError("ledger entry " + entry.EntryID)
	}
	// Kind, session and creation audit fields are immutable.
	updated := previous
	updated.Amount = entry.Amount
	updated.Description = entry.Description
	updated.Classification = entry.Classification
	updated.Justification = entry.Justification
	updated.LastUpdatedAt = entry.LastUpdatedAt
	updated.LastUpdatedBy = entry.LastUpdatedBy

	r.store.entries[entry.EntryID] = updated
	t.undo = append(t.undo, func() { r.store.entries[previous.EntryID] = previous })
	return nil
}

func (r *LedgerEntryRepository) DeleteEntryInTx(_ context.Context, tx pgx.Tx, entryID string) error {
	t, err := r.own(tx)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	previous, ok := r.store.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	previousOrder := r.store.sessionEntries[previous.SessionID]
	remaining := make([]string, 0, len(previousOrder))
	for _, id := range previousOrder {
		if id != entryID {
			remaining = append(remaining, id)
		}
	}

	delete(r.store.entries, entryID)
	r.store.sessionEntries[previous.SessionID] = remaining
	t.undo = append(t.undo, func() {
		r.store.entries[previous.EntryID] = previous
		r.store.sessionEntries[previous.SessionID] = previousOrder
	})
	return nil
}

// find and list expect the caller to hold store.mu.
func (r *LedgerEntryRepository) find(entryID string) (*domain.LedgerEntry, error) {
	e, ok := r.store.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	return &e, nil
}

func (r *LedgerEntryRepository) list(sessionID string, kind *domain.EntryKind) []domain.LedgerEntry {
	ids := r.store.sessionEntries[sessionID]
	entries := make([]domain.LedgerEntry, 0, len(ids))
	for _, id := range ids {
		e := r.store.entries[id]
		if kind != nil && e.Kind != *kind {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
