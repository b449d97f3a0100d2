package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// EntryKind is stored as text with a CHECK constraint.
type EntryKind string

const (
	Income  EntryKind = "INCOME"
	Expense EntryKind = "EXPENSE"
)

// LedgerEntry mirrors a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID        string           `db:"entry_id"`
	SessionID      string           `db:"session_id"` // FK -> cash_sessions.session_id
	Kind           EntryKind        `db:"kind"`
	Amount         *decimal.Decimal `db:"amount"` // Scanned via pointer so a NULL reads as zero
	Description    string           `db:"description"`
	Classification string           `db:"classification"` // payment method or expense category
	Justification  sql.NullString   `db:"justification"`
	AuditFields
}
