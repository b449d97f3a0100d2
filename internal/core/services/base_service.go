package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(19,4): four decimal places, magnitude below 10^15.
const moneyScale = 4

var moneyLimit = decimal.New(1, 15)

// checkMoney rejects amounts the store would round or overflow.
func checkMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return apperrors.NewValidationError("%s must have at most %d decimal places, got %s", field, moneyScale, amount.String())
	}
	if amount.Abs().GreaterThanOrEqual(moneyLimit) {
		return apperrors.NewValidationError("%s must be below %s, got %s", field, moneyLimit.String(), amount.String())
	}
	return nil
}

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics portssvc.LedgerMetrics
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeActor checks that the actor may act on resources owned by ownerEmployeeID.
func (s *BaseService) AuthorizeActor(ctx context.Context, actor domain.Actor, ownerEmployeeID string, action string) error {
	if actor.CanActFor(ownerEmployeeID) {
		return nil
	}
	s.GetLogger(ctx).Warn("Actor not authorized",
		slog.String("action", action),
		slog.String("actor_id", actor.EmployeeID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("owner_id", ownerEmployeeID))
	return fmt.Errorf("%w: %s is limited to the owning employee or an administrator", apperrors.ErrForbidden, action)
}

// rollback releases tx on every exit path; after a successful commit it is a no-op.
func (s *BaseService) rollback(ctx context.Context, tm portsrepo.TransactionManager, tx pgx.Tx) {
	if err := tm.Rollback(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to roll back transaction")
	}
}

func (s *BaseService) metrics() portssvc.LedgerMetrics {
	if s.Metrics == nil {
		return noopMetrics{}
	}
	return s.Metrics
}

type noopMetrics struct{}

func (noopMetrics) SessionOpened()                                {}
func (noopMetrics) OpenConflict()                                 {}
func (noopMetrics) SessionClosed(domain.ReconciliationStatus)     {}
func (noopMetrics) EntryRecorded(domain.EntryKind)                {}
