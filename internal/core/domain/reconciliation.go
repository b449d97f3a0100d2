package domain

import "github.com/shopspring/decimal"

// ReconciliationStatus classifies a close against the expected balance.
type ReconciliationStatus string

const (
	ReconciliationExact           ReconciliationStatus = "EXACT"
	ReconciliationWithinTolerance ReconciliationStatus = "WITHIN_TOLERANCE"
	ReconciliationRequiresReview  ReconciliationStatus = "REQUIRES_REVIEW"
)

// Accepted reports whether the result needs no review.
func (s ReconciliationStatus) Accepted() bool {
	return s == ReconciliationExact || s == ReconciliationWithinTolerance
}

// ReconciliationPolicy is the single source of truth for discrepancy handling.
// A discrepancy never blocks a close; it only changes the classification.
type ReconciliationPolicy struct {
	Tolerance    decimal.Decimal
	CurrencyCode string
}

// Classify maps a discrepancy onto a ReconciliationStatus.
func (p ReconciliationPolicy) Classify(discrepancy decimal.Decimal) ReconciliationStatus {
	if discrepancy.IsZero() {
		return ReconciliationExact
	}
	if discrepancy.Abs().LessThanOrEqual(p.Tolerance.Abs()) {
		return ReconciliationWithinTolerance
	}
	return ReconciliationRequiresReview
}

// ReconciliationSummary is what the engine reports for a session.
// ReportedBalance and Discrepancy are zero for previews of an open session.
type ReconciliationSummary struct {
	SessionID       string               `json:"sessionID"`
	OpeningBalance  decimal.Decimal      `json:"openingBalance"`
	TotalIncome     decimal.Decimal      `json:"totalIncome"`
	TotalExpense    decimal.Decimal      `json:"totalExpense"`
	IncomeCount     int                  `json:"incomeCount"`
	ExpenseCount    int                  `json:"expenseCount"`
	EntryCount      int                  `json:"entryCount"`
	ExpectedBalance decimal.Decimal      `json:"expectedBalance"`
	ReportedBalance decimal.Decimal      `json:"reportedBalance"`
	Discrepancy     decimal.Decimal      `json:"discrepancy"`
	Tolerance       decimal.Decimal      `json:"tolerance"`
	Classification  ReconciliationStatus `json:"classification"`
}

// CloseResult is returned by a successful close.
// Warning is set when the classification requires review.
type CloseResult struct {
	Session CashSession
	Summary ReconciliationSummary
	Warning *string
}
