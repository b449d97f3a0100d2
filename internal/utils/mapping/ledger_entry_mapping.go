package mapping

import (
	"database/sql"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/models"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/accounting"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	amount := d.Amount
	m := models.LedgerEntry{
		EntryID:        d.EntryID,
		SessionID:      d.SessionID,
		Kind:           models.EntryKind(d.Kind),
		Amount:         &amount,
		Description:    d.Description,
		Classification: d.Classification,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Justification != nil {
		m.Justification = sql.NullString{String: *d.Justification, Valid: true}
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:        m.EntryID,
		SessionID:      m.SessionID,
		Kind:           domain.EntryKind(m.Kind),
		Amount:         accounting.AmountOrZero(m.Amount),
		Description:    m.Description,
		Classification: m.Classification,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.Justification.Valid {
		j := m.Justification.String
		d.Justification = &j
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to a slice of domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
