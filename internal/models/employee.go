package models

// Employee mirrors a row of the employees table.
type Employee struct {
	EmployeeID string `db:"employee_id"`
	Name       string `db:"name"`
	Role       string `db:"role"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
