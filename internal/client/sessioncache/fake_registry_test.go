package sessioncache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeRegistry is a small in-memory ledger standing in for the HTTP client.
type fakeRegistry struct {
	mu       sync.Mutex
	sessions map[string]*dto.CashSessionResponse
	entries  map[string][]dto.LedgerEntryResponse
	getErr   error
	getCalls atomic.Int64
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		sessions: map[string]*dto.CashSessionResponse{},
		entries:  map[string][]dto.LedgerEntryResponse{},
	}
}

func (f *fakeRegistry) seed(employeeID string, open bool) *dto.CashSessionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &dto.CashSessionResponse{
		SessionID:      uuid.NewString(),
		EmployeeID:     employeeID,
		Status:         domain.SessionOpen,
		OpenedAt:       time.Now().UTC(),
		OpeningBalance: decimal.NewFromInt(1000),
	}
	if !open {
		closedAt := time.Now().UTC()
		s.ClosedAt = &closedAt
		s.Status = domain.SessionClosed
	}
	f.sessions[s.SessionID] = s
	out := *s
	return &out
}

// closeRemotely simulates an administrator closing the session from another client.
func (f *fakeRegistry) closeRemotely(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	closedAt := time.Now().UTC()
	f.sessions[sessionID].ClosedAt = &closedAt
	f.sessions[sessionID].Status = domain.SessionClosed
}

func (f *fakeRegistry) failGets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

func (f *fakeRegistry) GetSession(ctx context.Context, sessionID string) (*dto.CashSessionResponse, error) {
	f.getCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash session")
	}
	out := *s
	out.Entries = append([]dto.LedgerEntryResponse(nil), f.entries[sessionID]...)
	return &out, nil
}

func (f *fakeRegistry) GetOpenSession(ctx context.Context, employeeID string) (*dto.CashSessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() {
			out := *s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistry) OpenSession(ctx context.Context, employeeID string, openingBalance decimal.Decimal) (*dto.CashSessionResponse, error) {
	f.mu.Lock()
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() {
			f.mu.Unlock()
			return nil, apperrors.NewAlreadyOpenError(employeeID, s.SessionID)
		}
	}
	f.mu.Unlock()
	s := f.seed(employeeID, true)
	f.mu.Lock()
	f.sessions[s.SessionID].OpeningBalance = openingBalance
	f.mu.Unlock()
	s.OpeningBalance = openingBalance
	return s, nil
}

func (f *fakeRegistry) CloseSession(ctx context.Context, sessionID string, closingBalance decimal.Decimal, note *string) (*dto.CloseSessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash session")
	}
	if !s.IsOpen() {
		return nil, apperrors.ErrAlreadyClosed
	}
	closedAt := time.Now().UTC()
	s.ClosedAt = &closedAt
	s.Status = domain.SessionClosed
	s.ClosingBalance = &closingBalance
	return &dto.CloseSessionResponse{Session: *s}, nil
}

func (f *fakeRegistry) AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest) (*dto.LedgerEntryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash session")
	}
	if !s.IsOpen() {
		return nil, apperrors.ErrSessionClosed
	}
	entry := dto.LedgerEntryResponse{
		EntryID:     uuid.NewString(),
		SessionID:   sessionID,
		Kind:        req.Kind,
		Amount:      *req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	f.entries[sessionID] = append(f.entries[sessionID], entry)
	return &entry, nil
}

func (f *fakeRegistry) ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind) (*dto.ListEntriesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dto.ListEntriesResponse{Entries: append([]dto.LedgerEntryResponse(nil), f.entries[sessionID]...)}, nil
}
