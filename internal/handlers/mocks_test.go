package handlers_test

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CashSessionService ---
type MockCashSessionService struct {
	mock.Mock
}

func (m *MockCashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, actor domain.Actor) (*domain.CashSession, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, actor domain.Actor) (*domain.CloseResult, error) {
	args := m.Called(ctx, sessionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseResult), args.Error(1)
}

func (m *MockCashSessionService) GetSessionByID(ctx context.Context, sessionID string, actor domain.Actor) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) GetOpenSessionForEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.CashSession, error) {
	args := m.Called(ctx, employeeID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionService) ListSessionHistory(ctx context.Context, actor domain.Actor, params dto.ListSessionsParams) ([]domain.CashSession, *string, error) {
	args := m.Called(ctx, actor, params)
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.CashSession), token, args.Error(2)
}

func (m *MockCashSessionService) GetSessionSummary(ctx context.Context, sessionID string, actor domain.Actor) (*domain.ReconciliationSummary, error) {
	args := m.Called(ctx, sessionID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CashSessionSvcFacade = (*MockCashSessionService)(nil)

// --- Mock LedgerEntryService ---
type MockLedgerEntryService struct {
	mock.Mock
}

func (m *MockLedgerEntryService) AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, sessionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryService) DeleteEntry(ctx context.Context, entryID string, actor domain.Actor) error {
	args := m.Called(ctx, entryID, actor)
	return args.Error(0)
}

func (m *MockLedgerEntryService) ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind, actor domain.Actor) (*domain.EntryList, error) {
	args := m.Called(ctx, sessionID, kind, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryList), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerEntrySvcFacade = (*MockLedgerEntryService)(nil)

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetActiveEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) RegisterEmployee(ctx context.Context, req dto.RegisterEmployeeRequest, actor domain.Actor) (*domain.Employee, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.EmployeeDirectorySvc = (*MockEmployeeService)(nil)
