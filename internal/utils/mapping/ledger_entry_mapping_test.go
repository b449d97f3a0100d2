package mapping

import (
	"testing"

	"github.com/SscSPs/barbershop_cashdrawer/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainLedgerEntry_NullAmountReadsAsZero(t *testing.T) {
	entry := ToDomainLedgerEntry(models.LedgerEntry{EntryID: "e1", Kind: models.Income})
	assert.True(t, entry.Amount.IsZero())

	amount := decimal.RequireFromString("1500.25")
	entry = ToDomainLedgerEntry(models.LedgerEntry{EntryID: "e2", Kind: models.Expense, Amount: &amount})
	assert.True(t, entry.Amount.Equal(amount))
}
