package services

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
)

// EmployeeDirectorySvc is the ledger's adapter over the employee directory.
type EmployeeDirectorySvc interface {
	// GetActiveEmployee fails with ErrNotFound when missing and ErrValidation when inactive.
	GetActiveEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)

	GetEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.Employee, error)
	RegisterEmployee(ctx context.Context, req dto.RegisterEmployeeRequest, actor domain.Actor) (*domain.Employee, error)
}

// LedgerMetrics receives business events. Implementations must be safe for concurrent use.
type LedgerMetrics interface {
	SessionOpened()
	OpenConflict()
	SessionClosed(classification domain.ReconciliationStatus)
	EntryRecorded(kind domain.EntryKind)
}
