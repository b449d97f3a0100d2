package services

import (
	"context"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
)

// LedgerEntryReaderSvc defines read operations for entries
type LedgerEntryReaderSvc interface {
	// ListEntries returns a session's entries in insertion order plus computed totals.
	ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind, actor domain.Actor) (*domain.EntryList, error)
}

// LedgerEntryWriterSvc defines write operations for entries; all require an open session
type LedgerEntryWriterSvc interface {
	AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, entryID string, actor domain.Actor) error
}

// LedgerEntrySvcFacade combines all entry-related service interfaces
type LedgerEntrySvcFacade interface {
	LedgerEntryReaderSvc
	LedgerEntryWriterSvc
}
