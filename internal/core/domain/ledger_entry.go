package domain

import (
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes money coming into the drawer from money leaving it.
type EntryKind string

const (
	EntryIncome  EntryKind = "INCOME"
	EntryExpense EntryKind = "EXPENSE"
)

// IsValid reports whether k is a known entry kind.
func (k EntryKind) IsValid() bool {
	return k == EntryIncome || k == EntryExpense
}

// Payment methods classify income entries.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// Categories classify expense entries.
const (
	CategorySupplies    = "SUPPLIES"
	CategoryUtilities   = "UTILITIES"
	CategoryPayroll     = "PAYROLL"
	CategoryMaintenance = "MAINTENANCE"
	CategoryOther       = "OTHER"
)

var classifications = map[EntryKind][]string{
	EntryIncome:  {PaymentCash, PaymentCard, PaymentTransfer},
	EntryExpense: {CategorySupplies, CategoryUtilities, CategoryPayroll, CategoryMaintenance, CategoryOther},
}

// DefaultClassification returns the classification applied when none is given.
func DefaultClassification(kind EntryKind) string {
	if kind == EntryExpense {
		return CategoryOther
	}
	return PaymentCash
}

// IsValidClassification reports whether c is allowed for entries of the given kind.
func IsValidClassification(kind EntryKind, c string) bool {
	for _, allowed := range classifications[kind] {
		if allowed == c {
			return true
		}
	}
	return false
}

// LedgerEntry is a single income or expense recorded against one session.
// CreatedBy identifies the recording employee.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	SessionID      string          `json:"sessionID"`
	Kind           EntryKind       `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Classification string          `json:"classification"`
	Justification  *string         `json:"justification,omitempty"`
	AuditFields
}

// EntryList is a session's entries plus their computed totals.
// Total is the sum for the requested kind, or income minus expense when unfiltered.
type EntryList struct {
	Entries      []LedgerEntry
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Total        decimal.Decimal
}
