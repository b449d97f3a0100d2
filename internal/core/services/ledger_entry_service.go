package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerEntryService records income and expense against open sessions.
type ledgerEntryService struct {
	BaseService
	sessionRepo portsrepo.CashSessionRepositoryWithTx
	entryRepo   portsrepo.LedgerEntryRepositoryFacade
	now         func() time.Time
}

// LedgerEntryOption is a function that configures a ledgerEntryService
type LedgerEntryOption func(*ledgerEntryService)

// WithEntryMetrics reports recorded entries to m.
func WithEntryMetrics(m portssvc.LedgerMetrics) LedgerEntryOption {
	return func(s *ledgerEntryService) {
		s.Metrics = m
	}
}

// WithEntryClock sets the time source used for audit timestamps.
func WithEntryClock(now func() time.Time) LedgerEntryOption {
	return func(s *ledgerEntryService) {
		s.now = now
	}
}

// NewLedgerEntryService creates a new entry store service.
func NewLedgerEntryService(
	sessionRepo portsrepo.CashSessionRepositoryWithTx,
	entryRepo portsrepo.LedgerEntryRepositoryFacade,
	options ...LedgerEntryOption,
) portssvc.LedgerEntrySvcFacade {
	svc := &ledgerEntryService{
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerEntrySvcFacade = (*ledgerEntryService)(nil)

func (s *ledgerEntryService) AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	if !req.Kind.IsValid() {
		return nil, apperrors.NewValidationError("unknown entry kind %q", req.Kind)
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description must not be empty")
	}
	classification, err := resolveClassification(req.Kind, req.Classification)
	if err != nil {
		return nil, err
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for entry")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.sessionRepo, tx)

	session, err := s.lockOpenSession(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeActor(ctx, actor, session.EmployeeID, "recording an entry"); err != nil {
		return nil, err
	}

	now := s.now()
	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		SessionID:      sessionID,
		Kind:           req.Kind,
		Amount:         *req.Amount,
		Description:    description,
		Classification: classification,
		Justification:  trimmedOrNil(req.Justification),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.entryRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit entry")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics().EntryRecorded(entry.Kind)
	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("session_id", sessionID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *ledgerEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	if req.Amount != nil {
		if err := validateAmount(req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, apperrors.NewValidationError("description must not be empty")
	}

	tx, entry, err := s.lockEntry(ctx, entryID, actor, "editing an entry")
	if err != nil {
		return nil, err
	}
	defer s.rollback(ctx, s.sessionRepo, tx)

	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}
	if req.Classification != nil {
		classification, err := resolveClassification(entry.Kind, *req.Classification)
		if err != nil {
			return nil, err
		}
		entry.Classification = classification
	}
	if req.Justification != nil {
		entry.Justification = trimmedOrNil(req.Justification)
	}
	entry.LastUpdatedAt = s.now()
	entry.LastUpdatedBy = actor.EmployeeID

	if err := s.entryRepo.UpdateEntryInTx(ctx, tx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit entry update")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *ledgerEntryService) DeleteEntry(ctx context.Context, entryID string, actor domain.Actor) error {
	tx, entry, err := s.lockEntry(ctx, entryID, actor, "deleting an entry")
	if err != nil {
		return err
	}
	defer s.rollback(ctx, s.sessionRepo, tx)

	if err := s.entryRepo.DeleteEntryInTx(ctx, tx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit entry delete")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("entry_id", entryID), slog.String("session_id", entry.SessionID))
	return nil
}

// ListEntries returns the session's entries with totals. Total is the sum of the
// requested kind, or income minus expense when unfiltered.
func (s *ledgerEntryService) ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind, actor domain.Actor) (*domain.EntryList, error) {
	if kind != nil && !kind.IsValid() {
		return nil, apperrors.NewValidationError("unknown entry kind %q", *kind)
	}
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}
	if err := s.AuthorizeActor(ctx, actor, session.EmployeeID, "listing entries"); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesBySession(ctx, sessionID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	income, expense, _, _ := accounting.Totals(entries)
	total := income.Sub(expense)
	if kind != nil {
		switch *kind {
		case domain.EntryIncome:
			total = income
		case domain.EntryExpense:
			total = expense
		}
	}
	return &domain.EntryList{
		Entries:      entries,
		TotalIncome:  income,
		TotalExpense: expense,
		Total:        total,
	}, nil
}

// lockOpenSession row-locks the session and fails unless it is still open.
func (s *ledgerEntryService) lockOpenSession(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindSessionByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !session.IsOpen() {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrSessionClosed)
	}
	return session, nil
}

// lockEntry begins a transaction, locks the entry's session and re-reads the entry
// under that lock. On success the caller owns tx; on failure it has been rolled back.
func (s *ledgerEntryService) lockEntry(ctx context.Context, entryID string, actor domain.Actor, action string) (pgx.Tx, *domain.LedgerEntry, error) {
	current, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for entry")
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	fail := func(err error) (pgx.Tx, *domain.LedgerEntry, error) {
		s.rollback(ctx, s.sessionRepo, tx)
		return nil, nil, err
	}

	session, err := s.lockOpenSession(ctx, tx, current.SessionID)
	if err != nil {
		return fail(err)
	}
	entry, err := s.entryRepo.FindEntryByIDInTx(ctx, tx, entryID)
	if err != nil {
		return fail(fmt.Errorf("failed to find entry %s: %w", entryID, err))
	}
	if !actor.IsAdmin() && (actor.EmployeeID != entry.CreatedBy || !actor.CanActFor(session.EmployeeID)) {
		s.GetLogger(ctx).Warn("Actor not authorized",
			slog.String("action", action),
			slog.String("actor_id", actor.EmployeeID),
			slog.String("entry_id", entryID))
		return fail(fmt.Errorf("%w: %s is limited to the recording employee or an administrator", apperrors.ErrForbidden, action))
	}
	return tx, entry, nil
}

func validateAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return apperrors.NewValidationError("amount is required")
	}
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive, got %s", amount.String())
	}
	return checkMoney("amount", *amount)
}

// resolveClassification normalizes c and applies the kind's default when empty.
func resolveClassification(kind domain.EntryKind, c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return domain.DefaultClassification(kind), nil
	}
	if !domain.IsValidClassification(kind, c) {
		return "", apperrors.NewValidationError("classification %q is not valid for %s entries", c, kind)
	}
	return c, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
