package services

import (
	"fmt"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reconciliationService applies the configured policy to session entries.
type reconciliationService struct {
	policy domain.ReconciliationPolicy
}

// NewReconciliationService creates the reconciliation engine for a policy.
func NewReconciliationService(policy domain.ReconciliationPolicy) portssvc.ReconciliationSvc {
	policy.Tolerance = policy.Tolerance.Abs()
	return &reconciliationService{policy: policy}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) Policy() domain.ReconciliationPolicy {
	return s.policy
}

func (s *reconciliationService) ComputeExpectedBalance(session domain.CashSession, entries []domain.LedgerEntry) decimal.Decimal {
	return accounting.ComputeExpectedBalance(session, entries)
}

func (s *reconciliationService) Summarize(session domain.CashSession, entries []domain.LedgerEntry) domain.ReconciliationSummary {
	return accounting.Summarize(session, entries, s.policy)
}

func (s *reconciliationService) EvaluateClose(session domain.CashSession, entries []domain.LedgerEntry, reported decimal.Decimal) domain.ReconciliationSummary {
	return accounting.EvaluateClose(session, entries, reported, s.policy)
}

func (s *reconciliationService) DiscrepancyWarning(summary domain.ReconciliationSummary) *string {
	if summary.Classification != domain.ReconciliationRequiresReview {
		return nil
	}
	msg := fmt.Sprintf("Closed with a significant difference of %s: expected %s, counted %s",
		utils.FormatMoney(summary.Discrepancy, s.policy.CurrencyCode),
		utils.FormatMoney(summary.ExpectedBalance, s.policy.CurrencyCode),
		utils.FormatMoney(summary.ReportedBalance, s.policy.CurrencyCode))
	return &msg
}
