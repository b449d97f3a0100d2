package accounting

import (
	"fmt"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect of an entry on the drawer balance.
// Income adds to the drawer, expense takes from it.
func CalculateSignedAmount(entry domain.LedgerEntry) (decimal.Decimal, error) {
	switch entry.Kind {
	case domain.EntryIncome:
		return entry.Amount, nil
	case domain.EntryExpense:
		return entry.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown entry kind '%s' encountered for entry ID %s", entry.Kind, entry.EntryID)
	}
}

// AmountOrZero reads a nullable stored amount, treating NULL as zero.
func AmountOrZero(amount *decimal.Decimal) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return *amount
}

// Totals sums entries by kind. Entries of unknown kind are ignored.
func Totals(entries []domain.LedgerEntry) (income decimal.Decimal, expense decimal.Decimal, incomeCount int, expenseCount int) {
	income, expense = decimal.Zero, decimal.Zero
	for i := range entries {
		amount := entries[i].Amount
		switch entries[i].Kind {
		case domain.EntryIncome:
			income = income.Add(amount)
			incomeCount++
		case domain.EntryExpense:
			expense = expense.Add(amount)
			expenseCount++
		}
	}
	return income, expense, incomeCount, expenseCount
}

// ComputeExpectedBalance is openingBalance + sum(income) - sum(expense).
func ComputeExpectedBalance(session domain.CashSession, entries []domain.LedgerEntry) decimal.Decimal {
	income, expense, _, _ := Totals(entries)
	return session.OpeningBalance.Add(income).Sub(expense)
}

// Summarize builds the running summary of a session without a reported balance.
func Summarize(session domain.CashSession, entries []domain.LedgerEntry, policy domain.ReconciliationPolicy) domain.ReconciliationSummary {
	income, expense, incomeCount, expenseCount := Totals(entries)
	opening := session.OpeningBalance
	return domain.ReconciliationSummary{
		SessionID:       session.SessionID,
		OpeningBalance:  opening,
		TotalIncome:     income,
		TotalExpense:    expense,
		IncomeCount:     incomeCount,
		ExpenseCount:    expenseCount,
		EntryCount:      incomeCount + expenseCount,
		ExpectedBalance: opening.Add(income).Sub(expense),
		ReportedBalance: decimal.Zero,
		Discrepancy:     decimal.Zero,
		Tolerance:       policy.Tolerance,
	}
}

// EvaluateClose compares a reported closing balance against the expected balance
// and classifies the discrepancy. It never rejects a close.
func EvaluateClose(session domain.CashSession, entries []domain.LedgerEntry, reported decimal.Decimal, policy domain.ReconciliationPolicy) domain.ReconciliationSummary {
	summary := Summarize(session, entries, policy)
	summary.ReportedBalance = reported
	summary.Discrepancy = reported.Sub(summary.ExpectedBalance)
	summary.Classification = policy.Classify(summary.Discrepancy)
	return summary
}
