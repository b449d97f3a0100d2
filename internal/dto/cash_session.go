package dto

import (
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest defines the data needed to open a cash session.
type OpenSessionRequest struct {
	EmployeeID     string           `json:"employeeID" binding:"omitempty,max=64"`
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"required"`
}

// CloseSessionRequest defines the data needed to close a cash session.
type CloseSessionRequest struct {
	ClosingBalance *decimal.Decimal `json:"closingBalance" binding:"required"`
	Note           *string          `json:"note,omitempty" binding:"omitempty,max=500"`
}

// ListSessionsParams defines query parameters for the session history.
type ListSessionsParams struct {
	EmployeeID *string `form:"employeeID"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// CashSessionResponse defines the data returned for a cash session.
type CashSessionResponse struct {
	SessionID            string                       `json:"sessionID"`
	EmployeeID           string                       `json:"employeeID"`
	Status               domain.SessionStatus         `json:"status"`
	OpenedAt             time.Time                    `json:"openedAt"`
	ClosedAt             *time.Time                   `json:"closedAt,omitempty"`
	OpeningBalance       decimal.Decimal              `json:"openingBalance"`
	ClosingBalance       *decimal.Decimal             `json:"closingBalance,omitempty"`
	Note                 *string                      `json:"note,omitempty"`
	ExpectedBalance      *decimal.Decimal             `json:"expectedBalance,omitempty"`
	Discrepancy          *decimal.Decimal             `json:"discrepancy,omitempty"`
	ReconciliationStatus *domain.ReconciliationStatus `json:"reconciliationStatus,omitempty"`
	Entries              []LedgerEntryResponse        `json:"entries,omitempty"`
}

// IsOpen reports whether the backend considers the session open.
func (r CashSessionResponse) IsOpen() bool {
	return r.ClosedAt == nil
}

// OpenSessionLookupResponse wraps the optional open session of an employee.
// Session is null when the employee has no open session.
type OpenSessionLookupResponse struct {
	Session *CashSessionResponse `json:"session"`
}

// ListSessionsResponse wraps a page of sessions.
type ListSessionsResponse struct {
	Sessions  []CashSessionResponse `json:"sessions"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ReconciliationSummaryResponse mirrors domain.ReconciliationSummary on the wire.
type ReconciliationSummaryResponse struct {
	SessionID       string                      `json:"sessionID"`
	OpeningBalance  decimal.Decimal             `json:"openingBalance"`
	TotalIncome     decimal.Decimal             `json:"totalIncome"`
	TotalExpense    decimal.Decimal             `json:"totalExpense"`
	IncomeCount     int                         `json:"incomeCount"`
	ExpenseCount    int                         `json:"expenseCount"`
	EntryCount      int                         `json:"entryCount"`
	ExpectedBalance decimal.Decimal             `json:"expectedBalance"`
	ReportedBalance decimal.Decimal             `json:"reportedBalance"`
	Discrepancy     decimal.Decimal             `json:"discrepancy"`
	Tolerance       decimal.Decimal             `json:"tolerance"`
	Classification  domain.ReconciliationStatus `json:"classification,omitempty"`
}

// CloseSessionResponse is returned by a successful close.
type CloseSessionResponse struct {
	Session CashSessionResponse           `json:"session"`
	Summary ReconciliationSummaryResponse `json:"summary"`
	Warning *string                       `json:"warning,omitempty"`
}

// ToCashSessionResponse converts a domain.CashSession to its DTO, including loaded entries.
func ToCashSessionResponse(s *domain.CashSession) CashSessionResponse {
	resp := CashSessionResponse{
		SessionID:            s.SessionID,
		EmployeeID:           s.EmployeeID,
		Status:               s.Status(),
		OpenedAt:             s.OpenedAt,
		ClosedAt:             s.ClosedAt,
		OpeningBalance:       s.OpeningBalance,
		ClosingBalance:       s.ClosingBalance,
		Note:                 s.Note,
		ExpectedBalance:      s.ExpectedBalance,
		Discrepancy:          s.Discrepancy,
		ReconciliationStatus: s.ReconciliationStatus,
	}
	if len(s.Entries) > 0 {
		resp.Entries = ToLedgerEntryResponses(s.Entries)
	}
	return resp
}

// ToCashSessionResponses converts a slice of sessions.
func ToCashSessionResponses(sessions []domain.CashSession) []CashSessionResponse {
	responses := make([]CashSessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToCashSessionResponse(&sessions[i])
	}
	return responses
}

// ToReconciliationSummaryResponse converts a domain summary to its DTO.
func ToReconciliationSummaryResponse(s domain.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		SessionID:       s.SessionID,
		OpeningBalance:  s.OpeningBalance,
		TotalIncome:     s.TotalIncome,
		TotalExpense:    s.TotalExpense,
		IncomeCount:     s.IncomeCount,
		ExpenseCount:    s.ExpenseCount,
		EntryCount:      s.EntryCount,
		ExpectedBalance: s.ExpectedBalance,
		ReportedBalance: s.ReportedBalance,
		Discrepancy:     s.Discrepancy,
		Tolerance:       s.Tolerance,
		Classification:  s.Classification,
	}
}

// ToCloseSessionResponse converts a domain.CloseResult to its DTO.
func ToCloseSessionResponse(r *domain.CloseResult) CloseSessionResponse {
	return CloseSessionResponse{
		Session: ToCashSessionResponse(&r.Session),
		Summary: ToReconciliationSummaryResponse(r.Summary),
		Warning: r.Warning,
	}
}
