package services

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
)

// CashSessionReaderSvc defines read operations of the session registry
type CashSessionReaderSvc interface {
	// GetSessionByID retrieves a session together with its entries.
	GetSessionByID(ctx context.Context, sessionID string, actor domain.Actor) (*domain.CashSession, error)

	// GetOpenSessionForEmployee returns the employee's open session, or nil with no error when there is none.
	GetOpenSessionForEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.CashSession, error)

	// ListSessionHistory returns sessions newest-first. Cashiers only ever see their own.
	ListSessionHistory(ctx context.Context, actor domain.Actor, params dto.ListSessionsParams) ([]domain.CashSession, *string, error)

	// GetSessionSummary returns the reconciliation engine's running view of a session.
	GetSessionSummary(ctx context.Context, sessionID string, actor domain.Actor) (*domain.ReconciliationSummary, error)
}

// CashSessionWriterSvc defines the lifecycle operations of the session registry
type CashSessionWriterSvc interface {
	// OpenSession opens a session. Fails with *apperrors.AlreadyOpenError if one is already open.
	OpenSession(ctx context.Context, req dto.OpenSessionRequest, actor domain.Actor) (*domain.CashSession, error)

	// CloseSession reconciles and closes a session in one transaction.
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, actor domain.Actor) (*domain.CloseResult, error)
}

// CashSessionSvcFacade combines all session-related service interfaces
type CashSessionSvcFacade interface {
	CashSessionReaderSvc
	CashSessionWriterSvc
}
