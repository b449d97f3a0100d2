package services_test

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock CashSessionRepository ---
type MockCashSessionRepository struct {
	mock.Mock
}

var _ portsrepo.CashSessionRepositoryWithTx = (*MockCashSessionRepository)(nil)

func (m *MockCashSessionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCashSessionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashSessionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindOpenSessionByEmployee(ctx context.Context, employeeID string) (*domain.CashSession, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) ListSessions(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	args := m.Called(ctx, employeeID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.CashSession), returnedNextToken, args.Error(2)
}

func (m *MockCashSessionRepository) LockEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) error {
	args := m.Called(ctx, tx, employeeID)
	return args.Error(0)
}

func (m *MockCashSessionRepository) FindOpenSessionByEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.CashSession, error) {
	args := m.Called(ctx, tx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) SaveSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockCashSessionRepository) FindSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) CloseSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

// --- Mock LedgerEntryRepository ---
type MockLedgerEntryRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*MockLedgerEntryRepository)(nil)

func (m *MockLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntriesBySession(ctx context.Context, sessionID string, kind *domain.EntryKind) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, sessionID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntriesBySessionInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	args := m.Called(ctx, tx, entryID)
	return args.Error(0)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// --- Mock LedgerMetrics ---
type MockLedgerMetrics struct {
	mock.Mock
}

var _ portssvc.LedgerMetrics = (*MockLedgerMetrics)(nil)

func (m *MockLedgerMetrics) SessionOpened()  { m.Called() }
func (m *MockLedgerMetrics) OpenConflict()   { m.Called() }
func (m *MockLedgerMetrics) SessionClosed(classification domain.ReconciliationStatus) {
	m.Called(classification)
}
func (m *MockLedgerMetrics) EntryRecorded(kind domain.EntryKind) { m.Called(kind) }
