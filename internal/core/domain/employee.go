package domain

// EmployeeRole is the role an authenticated employee acts with.
type EmployeeRole string

const (
	RoleAdmin   EmployeeRole = "ADMIN"
	RoleCashier EmployeeRole = "CASHIER"
)

// IsValid reports whether r is a known role.
func (r EmployeeRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// Employee is the subset of the employee directory the ledger needs.
type Employee struct {
	EmployeeID string       `json:"employeeID"`
	Name       string       `json:"name"`
	Role       EmployeeRole `json:"role"`
	IsActive   bool         `json:"isActive"`
	AuditFields
}

// Actor is the authenticated caller of a ledger operation.
type Actor struct {
	EmployeeID string
	Role       EmployeeRole
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActFor reports whether the actor may operate on resources owned by employeeID.
// Cashiers are limited to their own sessions; administrators may act on all.
func (a Actor) CanActFor(employeeID string) bool {
	return a.IsAdmin() || (a.EmployeeID != "" && a.EmployeeID == employeeID)
}
