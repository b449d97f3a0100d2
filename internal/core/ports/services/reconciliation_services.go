package services

import (
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvc is the pure reconciliation engine. It performs no I/O.
type ReconciliationSvc interface {
	Policy() domain.ReconciliationPolicy
	ComputeExpectedBalance(session domain.CashSession, entries []domain.LedgerEntry) decimal.Decimal
	Summarize(session domain.CashSession, entries []domain.LedgerEntry) domain.ReconciliationSummary
	EvaluateClose(session domain.CashSession, entries []domain.LedgerEntry, reported decimal.Decimal) domain.ReconciliationSummary

	// DiscrepancyWarning returns a human-readable warning for summaries that require review.
	DiscrepancyWarning(summary domain.ReconciliationSummary) *string
}
