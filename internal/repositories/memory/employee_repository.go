package memory

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
)

type EmployeeRepository struct {
	store *Store
}

var _ portsrepo.EmployeeRepositoryFacade = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) FindEmployeeByID(_ context.Context, employeeID string) (*domain.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.employees[employeeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("employee " + employeeID)
	}
	return &e, nil
}

// SaveEmployee upserts, keeping the original creation audit fields.
func (r *EmployeeRepository) SaveEmployee(_ context.Context, employee domain.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.employees[employee.EmployeeID]; ok {
		employee.CreatedAt = existing.CreatedAt
		employee.CreatedBy = existing.CreatedBy
	}
	r.store.employees[employee.EmployeeID] = employee
	return nil
}
