package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// cashSessionService implements the session registry on top of the repositories.
type cashSessionService struct {
	BaseService
	sessionRepo portsrepo.CashSessionRepositoryWithTx
	entryRepo   portsrepo.LedgerEntryRepositoryFacade
	employees   portssvc.EmployeeDirectorySvc
	engine      portssvc.ReconciliationSvc
	closeNote   string
	now         func() time.Time
}

// CashSessionOption is a function that configures a cashSessionService
type CashSessionOption func(*cashSessionService)

// WithSessionMetrics reports lifecycle events to m.
func WithSessionMetrics(m portssvc.LedgerMetrics) CashSessionOption {
	return func(s *cashSessionService) {
		s.Metrics = m
	}
}

// WithDefaultCloseNote overrides the note recorded when a close carries none.
func WithDefaultCloseNote(note string) CashSessionOption {
	return func(s *cashSessionService) {
		if strings.TrimSpace(note) != "" {
			s.closeNote = note
		}
	}
}

// WithSessionClock sets the time source used for OpenedAt and ClosedAt.
func WithSessionClock(now func() time.Time) CashSessionOption {
	return func(s *cashSessionService) {
		s.now = now
	}
}

// NewCashSessionService creates a new session registry service.
func NewCashSessionService(
	sessionRepo portsrepo.CashSessionRepositoryWithTx,
	entryRepo portsrepo.LedgerEntryRepositoryFacade,
	employees portssvc.EmployeeDirectorySvc,
	engine portssvc.ReconciliationSvc,
	options ...CashSessionOption,
) portssvc.CashSessionSvcFacade {
	svc := &cashSessionService{
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
		employees:   employees,
		engine:      engine,
		closeNote:   domain.DefaultCloseNote,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

// OpenSession opens a new session. The employee lock plus the open-session check
// run in one transaction, so two concurrent opens for one employee yield exactly one session.
func (s *cashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, actor domain.Actor) (*domain.CashSession, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, apperrors.NewValidationError("employee ID is required")
	}
	if req.OpeningBalance == nil {
		return nil, apperrors.NewValidationError("opening balance is required")
	}
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance must not be negative, got %s", req.OpeningBalance.String())
	}
	if err := checkMoney("opening balance", *req.OpeningBalance); err != nil {
		return nil, err
	}
	if err := s.AuthorizeActor(ctx, actor, employeeID, "opening a session"); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetActiveEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	now := s.now()
	session := domain.CashSession{
		SessionID:      uuid.NewString(),
		EmployeeID:     employeeID,
		OpenedAt:       now,
		OpeningBalance: *req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for open")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.sessionRepo, tx)

	if err := s.sessionRepo.LockEmployeeInTx(ctx, tx, employeeID); err != nil {
		return nil, fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}

	existing, err := s.sessionRepo.FindOpenSessionByEmployeeInTx(ctx, tx, employeeID)
	switch {
	case err == nil:
		s.metrics().OpenConflict()
		s.LogInfo(ctx, "Open rejected, session already open",
			slog.String("employee_id", employeeID), slog.String("session_id", existing.SessionID))
		return nil, apperrors.NewAlreadyOpenError(employeeID, existing.SessionID)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for open session", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to check for open session: %w", err)
	}

	if err := s.sessionRepo.SaveSessionInTx(ctx, tx, session); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyOpen) {
			s.metrics().OpenConflict()
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save session", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit open")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics().SessionOpened()
	s.LogInfo(ctx, "Cash session opened",
		slog.String("session_id", session.SessionID),
		slog.String("employee_id", employeeID),
		slog.String("opening_balance", session.OpeningBalance.String()))
	return &session, nil
}

// CloseSession reconciles and closes a session. The session row stays locked from
// the entry read until the terminal state is written, so no entry can slip in between.
func (s *cashSessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, actor domain.Actor) (*domain.CloseResult, error) {
	if req.ClosingBalance == nil {
		return nil, apperrors.NewValidationError("closing balance is required")
	}
	if req.ClosingBalance.IsNegative() {
		return nil, apperrors.NewValidationError("closing balance must not be negative, got %s", req.ClosingBalance.String())
	}
	if err := checkMoney("closing balance", *req.ClosingBalance); err != nil {
		return nil, err
	}
	note := s.closeNote
	if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
		note = strings.TrimSpace(*req.Note)
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for close")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, s.sessionRepo, tx)

	session, err := s.sessionRepo.FindSessionByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if err := s.AuthorizeActor(ctx, actor, session.EmployeeID, "closing a session"); err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrAlreadyClosed)
	}

	entries, err := s.entryRepo.ListEntriesBySessionInTx(ctx, tx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read entries for close", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	summary := s.engine.EvaluateClose(*session, entries, *req.ClosingBalance)
	session.ApplyClose(s.now(), summary, note, actor.EmployeeID)

	if err := s.sessionRepo.CloseSessionInTx(ctx, tx, *session); err != nil {
		s.LogError(ctx, err, "Failed to persist close", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit close")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	session.Entries = entries
	warning := s.engine.DiscrepancyWarning(summary)

	s.metrics().SessionClosed(summary.Classification)
	logArgs := []any{
		slog.String("session_id", sessionID),
		slog.String("expected", summary.ExpectedBalance.String()),
		slog.String("reported", summary.ReportedBalance.String()),
		slog.String("discrepancy", summary.Discrepancy.String()),
		slog.String("classification", string(summary.Classification)),
	}
	if warning != nil {
		s.GetLogger(ctx).Warn("Cash session closed with discrepancy", logArgs...)
	} else {
		s.LogInfo(ctx, "Cash session closed", logArgs...)
	}

	return &domain.CloseResult{
		Session: *session,
		Summary: summary,
		Warning: warning,
	}, nil
}

func (s *cashSessionService) GetSessionByID(ctx context.Context, sessionID string, actor domain.Actor) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}
	if err := s.AuthorizeActor(ctx, actor, session.EmployeeID, "viewing a session"); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesBySession(ctx, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for session %s: %w", sessionID, err)
	}
	session.Entries = entries
	return session, nil
}

func (s *cashSessionService) GetOpenSessionForEmployee(ctx context.Context, employeeID string, actor domain.Actor) (*domain.CashSession, error) {
	if err := s.AuthorizeActor(ctx, actor, employeeID, "looking up the open session"); err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.FindOpenSessionByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open session for %s: %w", employeeID, err)
	}
	return session, nil
}

func (s *cashSessionService) ListSessionHistory(ctx context.Context, actor domain.Actor, params dto.ListSessionsParams) ([]domain.CashSession, *string, error) {
	employeeID := params.EmployeeID
	if employeeID != nil {
		trimmed := strings.TrimSpace(*employeeID)
		employeeID = &trimmed
		if trimmed == "" {
			employeeID = nil
		}
	}
	if !actor.IsAdmin() {
		if employeeID != nil && *employeeID != actor.EmployeeID {
			return nil, nil, fmt.Errorf("%w: cashiers may only list their own sessions", apperrors.ErrForbidden)
		}
		self := actor.EmployeeID
		employeeID = &self
	}

	limit := pagination.ClampLimit(params.Limit, defaultHistoryLimit, maxHistoryLimit)
	sessions, nextToken, err := s.sessionRepo.ListSessions(ctx, employeeID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sessions")
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nextToken, nil
}

// GetSessionSummary reconciles a session on demand. Closed sessions are
// re-evaluated against their recorded closing balance.
func (s *cashSessionService) GetSessionSummary(ctx context.Context, sessionID string, actor domain.Actor) (*domain.ReconciliationSummary, error) {
	session, err := s.GetSessionByID(ctx, sessionID, actor)
	if err != nil {
		return nil, err
	}

	var summary domain.ReconciliationSummary
	if session.ClosingBalance != nil {
		summary = s.engine.EvaluateClose(*session, session.Entries, *session.ClosingBalance)
	} else {
		summary = s.engine.Summarize(*session, session.Entries)
	}
	return &summary, nil
}
