package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
)

// employeeService adapts the employee directory for the ledger.
type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeDirectorySvc.
func NewEmployeeService(repo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeDirectorySvc {
	return &employeeService{employeeRepo: repo}
}

var _ portssvc.EmployeeDirectorySvc = (*employeeService)(nil)

func (s *employeeService) GetActiveEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("employee %s: %w", employeeID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up employee", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to look up employee %s: %w", employeeID, err)
	}
	if !employee.IsActive {
		return nil, apperrors.NewValidationError("employee %s is not active", employeeID)
	}
	return employee, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.Employee, error) {
	if err := s.AuthorizeActor(ctx, actor, employeeID, "employee lookup"); err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *employeeService) RegisterEmployee(ctx context.Context, req dto.RegisterEmployeeRequest, actor domain.Actor) (*domain.Employee, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators may register employees", apperrors.ErrForbidden)
	}
	employeeID := strings.TrimSpace(req.EmployeeID)
	name := strings.TrimSpace(req.Name)
	if employeeID == "" || name == "" {
		return nil, apperrors.NewValidationError("employee ID and name are required")
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role %q", req.Role)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID: employeeID,
		Name:       name,
		Role:       req.Role,
		IsActive:   req.IsActive == nil || *req.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.LogInfo(ctx, "Employee registered", slog.String("employee_id", employeeID), slog.String("role", string(req.Role)))
	return &employee, nil
}
