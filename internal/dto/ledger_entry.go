package dto

import (
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddEntryRequest defines the data needed to record income or expense.
type AddEntryRequest struct {
	Kind           domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	Description    string           `json:"description" binding:"required,max=255"`
	Classification string           `json:"classification,omitempty"`
	Justification  *string          `json:"justification,omitempty" binding:"omitempty,max=500"`
}

// UpdateEntryRequest defines the editable fields of an entry. Nil fields are left unchanged.
type UpdateEntryRequest struct {
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Description    *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Classification *string          `json:"classification,omitempty"`
	Justification  *string          `json:"justification,omitempty" binding:"omitempty,max=500"`
}

// ListEntriesParams defines query parameters for listing a session's entries.
type ListEntriesParams struct {
	Kind *domain.EntryKind `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// LedgerEntryResponse defines the data returned for an entry.
type LedgerEntryResponse struct {
	EntryID        string           `json:"entryID"`
	SessionID      string           `json:"sessionID"`
	Kind           domain.EntryKind `json:"kind"`
	Amount         decimal.Decimal  `json:"amount"`
	Description    string           `json:"description"`
	Classification string           `json:"classification"`
	Justification  *string          `json:"justification,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
}

// ListEntriesResponse wraps a session's entries and their totals.
type ListEntriesResponse struct {
	Entries      []LedgerEntryResponse `json:"entries"`
	TotalIncome  decimal.Decimal       `json:"totalIncome"`
	TotalExpense decimal.Decimal       `json:"totalExpense"`
	Total        decimal.Decimal       `json:"total"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		SessionID:      e.SessionID,
		Kind:           e.Kind,
		Amount:         e.Amount,
		Description:    e.Description,
		Classification: e.Classification,
		Justification:  e.Justification,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ToListEntriesResponse converts a domain.EntryList to its DTO.
func ToListEntriesResponse(l *domain.EntryList) ListEntriesResponse {
	return ListEntriesResponse{
		Entries:      ToLedgerEntryResponses(l.Entries),
		TotalIncome:  l.TotalIncome,
		TotalExpense: l.TotalExpense,
		Total:        l.Total,
	}
}
