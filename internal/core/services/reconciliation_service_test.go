package services_test

import (
	"testing"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciliationService_EvaluateClose(t *testing.T) {
	engine := services.NewReconciliationService(domain.ReconciliationPolicy{
		Tolerance:    decimal.NewFromInt(1000),
		CurrencyCode: "COP",
	})
	session := domain.CashSession{SessionID: "sess-1", OpeningBalance: decimal.NewFromInt(100000)}
	entries := []domain.LedgerEntry{
		{Kind: domain.EntryIncome, Amount: decimal.NewFromInt(50000)},
		{Kind: domain.EntryExpense, Amount: decimal.NewFromInt(20000)},
	}

	testCases := []struct {
		name        string
		reported    int64
		discrepancy int64
		status      domain.ReconciliationStatus
		warns       bool
	}{
		{name: "exact", reported: 130000, discrepancy: 0, status: domain.ReconciliationExact},
		{name: "small surplus", reported: 130500, discrepancy: 500, status: domain.ReconciliationWithinTolerance},
		{name: "shortage at tolerance", reported: 129000, discrepancy: -1000, status: domain.ReconciliationWithinTolerance},
		{name: "large shortage", reported: 125000, discrepancy: -5000, status: domain.ReconciliationRequiresReview, warns: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := engine.EvaluateClose(session, entries, decimal.NewFromInt(tc.reported))

			assert.True(t, summary.ExpectedBalance.Equal(decimal.NewFromInt(130000)))
			assert.True(t, summary.Discrepancy.Equal(decimal.NewFromInt(tc.discrepancy)), "got %s", summary.Discrepancy)
			assert.Equal(t, tc.status, summary.Classification)
			assert.Equal(t, 2, summary.EntryCount)

			warning := engine.DiscrepancyWarning(summary)
			if tc.warns {
				require.NotNil(t, warning)
				assert.Contains(t, *warning, "Closed with a significant difference of")
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestReconciliationService_NegativeToleranceIsNormalized(t *testing.T) {
	engine := services.NewReconciliationService(domain.ReconciliationPolicy{Tolerance: decimal.NewFromInt(-200)})

	assert.True(t, engine.Policy().Tolerance.Equal(decimal.NewFromInt(200)))
}

func TestReconciliationService_ExpectedBalanceWithoutEntries(t *testing.T) {
	engine := services.NewReconciliationService(domain.ReconciliationPolicy{})
	session := domain.CashSession{OpeningBalance: decimal.NewFromInt(75000)}

	assert.True(t, engine.ComputeExpectedBalance(session, nil).Equal(decimal.NewFromInt(75000)))
}
