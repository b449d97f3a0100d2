package repositories

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
)

// EmployeeRepositoryFacade is the ledger's view of the employee directory.
type EmployeeRepositoryFacade interface {
	// FindEmployeeByID retrieves an employee regardless of active state.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// SaveEmployee inserts or updates an employee record.
	SaveEmployee(ctx context.Context, employee domain.Employee) error
}
