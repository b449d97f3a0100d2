package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is derived from ClosedAt; it is never stored on its own.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// DefaultCloseNote is recorded when a session is closed without observations.
const DefaultCloseNote = "No observations"

// CashSession is one employee's accountability period over a cash drawer.
// ClosedAt and ClosingBalance are either both nil (open) or both set (closed).
type CashSession struct {
	SessionID      string           `json:"sessionID"`
	EmployeeID     string           `json:"employeeID"`
	OpenedAt       time.Time        `json:"openedAt"`
	ClosedAt       *time.Time       `json:"closedAt,omitempty"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	ClosingBalance *decimal.Decimal `json:"closingBalance,omitempty"`
	Note           *string          `json:"note,omitempty"`

	// Reconciliation outcome persisted at close time.
	ExpectedBalance      *decimal.Decimal      `json:"expectedBalance,omitempty"`
	Discrepancy          *decimal.Decimal      `json:"discrepancy,omitempty"`
	ReconciliationStatus *ReconciliationStatus `json:"reconciliationStatus,omitempty"`

	Entries []LedgerEntry `json:"entries,omitempty"` // Loaded on demand
	AuditFields
}

// IsOpen reports whether the session still accepts entries.
func (s CashSession) IsOpen() bool {
	return s.ClosedAt == nil
}

// Status returns OPEN or CLOSED.
func (s CashSession) Status() SessionStatus {
	if s.IsOpen() {
		return SessionOpen
	}
	return SessionClosed
}

// ApplyClose stamps the terminal state on the session from a reconciliation summary.
func (s *CashSession) ApplyClose(closedAt time.Time, summary ReconciliationSummary, note string, closedBy string) {
	reported := summary.ReportedBalance
	expected := summary.ExpectedBalance
	discrepancy := summary.Discrepancy
	status := summary.Classification

	s.ClosedAt = &closedAt
	s.ClosingBalance = &reported
	s.Note = &note
	s.ExpectedBalance = &expected
	s.Discrepancy = &discrepancy
	s.ReconciliationStatus = &status
	s.LastUpdatedAt = closedAt
	s.LastUpdatedBy = closedBy
}
