package mapping

import (
	"database/sql"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/models"
)

// ToModelCashSession converts a domain CashSession to a model CashSession
func ToModelCashSession(d domain.CashSession) models.CashSession {
	m := models.CashSession{
		SessionID:       d.SessionID,
		EmployeeID:      d.EmployeeID,
		OpenedAt:        d.OpenedAt,
		ClosedAt:        d.ClosedAt,
		OpeningBalance:  d.OpeningBalance,
		ClosingBalance:  d.ClosingBalance,
		ExpectedBalance: d.ExpectedBalance,
		Discrepancy:     d.Discrepancy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Note != nil {
		m.Note = sql.NullString{String: *d.Note, Valid: true}
	}
	if d.ReconciliationStatus != nil {
		m.ReconciliationStatus = sql.NullString{String: string(*d.ReconciliationStatus), Valid: true}
	}
	return m
}

// ToDomainCashSession converts a model CashSession to a domain CashSession
func ToDomainCashSession(m models.CashSession) domain.CashSession {
	d := domain.CashSession{
		SessionID:       m.SessionID,
		EmployeeID:      m.EmployeeID,
		OpenedAt:        m.OpenedAt,
		ClosedAt:        m.ClosedAt,
		OpeningBalance:  m.OpeningBalance,
		ClosingBalance:  m.ClosingBalance,
		ExpectedBalance: m.ExpectedBalance,
		Discrepancy:     m.Discrepancy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.Note.Valid {
		note := m.Note.String
		d.Note = &note
	}
	if m.ReconciliationStatus.Valid {
		status := domain.ReconciliationStatus(m.ReconciliationStatus.String)
		d.ReconciliationStatus = &status
	}
	return d
}

// ToDomainCashSessionSlice converts a slice of model CashSessions to a slice of domain CashSessions
func ToDomainCashSessionSlice(ms []models.CashSession) []domain.CashSession {
	ds := make([]domain.CashSession, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashSession(m)
	}
	return ds
}
