package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type CashSessionRepository struct {
	txManager
}

var _ portsrepo.CashSessionRepositoryWithTx = (*CashSessionRepository)(nil)

func (r *CashSessionRepository) FindSessionByID(_ context.Context, sessionID string) (*domain.CashSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByID(sessionID)
}

func (r *CashSessionRepository) FindOpenSessionByEmployee(_ context.Context, employeeID string) (*domain.CashSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findOpen(employeeID)
}

// ListSessions orders by opened_at DESC, session_id DESC, matching the postgres driver.
func (r *CashSessionRepository) ListSessions(_ context.Context, employeeID *string, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var hasCursor bool
	var lastOpenedAt time.Time
	var lastSessionID string
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		hasCursor, lastOpenedAt, lastSessionID = true, at, id
	}

	r.store.mu.RLock()
	matched := make([]domain.CashSession, 0)
	for _, s := range r.store.sessions {
		if employeeID != nil && s.EmployeeID != *employeeID {
			continue
		}
		if hasCursor && !before(s, lastOpenedAt, lastSessionID) {
			continue
		}
		matched = append(matched, s)
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return before(matched[j], matched[i].OpenedAt, matched[i].SessionID)
	})

	var newNextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(last.OpenedAt, last.SessionID)
		newNextToken = &token
	}
	return matched, newNextToken, nil
}

func (r *CashSessionRepository) LockEmployeeInTx(_ context.Context, tx pgx.Tx, _ string) error {
	// Write transactions are already serialized store-wide.
	_, err := r.own(tx)
	return err
}

func (r *CashSessionRepository) FindOpenSessionByEmployeeInTx(_ context.Context, tx pgx.Tx, employeeID string) (*domain.CashSession, error) {
	if _, err := r.own(tx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findOpen(employeeID)
}

func (r *CashSessionRepository) SaveSessionInTx(_ context.Context, tx pgx.Tx, session domain.CashSession) error {
	t, err := r.own(tx)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.sessions[session.SessionID]; exists {
		return fmt.Errorf("%w: cash session %s already exists", apperrors.ErrDuplicate, session.SessionID)
	}
	if open, err := r.findOpen(session.EmployeeID); err == nil {
		return apperrors.NewAlreadyOpenError(session.EmployeeID, open.SessionID)
	}

	session.Entries = nil
	r.store.sessions[session.SessionID] = session
	t.undo = append(t.undo, func() { delete(r.store.sessions, session.SessionID) })
	return nil
}

func (r *CashSessionRepository) FindSessionByIDForUpdate(_ context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	if _, err := r.own(tx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByID(sessionID)
}

func (r *CashSessionRepository) CloseSessionInTx(_ context.Context, tx pgx.Tx, session domain.CashSession) error {
	t, err := r.own(tx)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	previous, ok := r.store.sessions[session.SessionID]
	if !ok {
		return apperrors.NewNotFoundError("cash session " + session.SessionID)
	}
	if !previous.IsOpen() {
		return fmt.Errorf("cash session %s: %w", session.SessionID, apperrors.ErrAlreadyClosed)
	}

	session.Entries = nil
	r.store.sessions[session.SessionID] = session
	t.undo = append(t.undo, func() { r.store.sessions[previous.SessionID] = previous })
	return nil
}

// findByID and findOpen expect the caller to hold store.mu.
func (r *CashSessionRepository) findByID(sessionID string) (*domain.CashSession, error) {
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash session " + sessionID)
	}
	return &s, nil
}

func (r *CashSessionRepository) findOpen(employeeID string) (*domain.CashSession, error) {
	for _, s := range r.store.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError("open cash session for employee " + employeeID)
}

// before reports whether s sorts strictly below the cursor (at, id).
func before(s domain.CashSession, at time.Time, id string) bool {
	if s.OpenedAt.Equal(at) {
		return s.SessionID < id
	}
	return s.OpenedAt.Before(at)
}
