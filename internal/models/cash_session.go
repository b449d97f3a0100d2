package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CashSession mirrors a row of the cash_sessions table.
type CashSession struct {
	SessionID            string           `db:"session_id"`
	EmployeeID           string           `db:"employee_id"`
	OpenedAt             time.Time        `db:"opened_at"`
	ClosedAt             *time.Time       `db:"closed_at"`       // NULL while open
	OpeningBalance       decimal.Decimal  `db:"opening_balance"` // Never negative
	ClosingBalance       *decimal.Decimal `db:"closing_balance"` // Set with closed_at
	Note                 sql.NullString   `db:"note"`
	ExpectedBalance      *decimal.Decimal `db:"expected_balance"`
	Discrepancy          *decimal.Decimal `db:"discrepancy"`
	ReconciliationStatus sql.NullString   `db:"reconciliation_status"`
	AuditFields
}
