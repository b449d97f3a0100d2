package dto

import (
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
)

// RegisterEmployeeRequest defines the data needed to register an employee with the ledger.
type RegisterEmployeeRequest struct {
	EmployeeID string              `json:"employeeID" binding:"required,max=64"`
	Name       string              `json:"name" binding:"required,max=120"`
	Role       domain.EmployeeRole `json:"role" binding:"required,oneof=ADMIN CASHIER"`
	IsActive   *bool               `json:"isActive,omitempty"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string              `json:"employeeID"`
	Name       string              `json:"name"`
	Role       domain.EmployeeRole `json:"role"`
	IsActive   bool                `json:"isActive"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to its DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Role:       e.Role,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}
