package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/SscSPs/barbershop_cashdrawer/internal/models"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/mapping"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// openSessionIndex is the partial unique index allowing one open session per employee.
const openSessionIndex = "cash_sessions_one_open_per_employee"

const sessionColumns = `
	session_id, employee_id, opened_at, closed_at, opening_balance, closing_balance, note,
	expected_balance, discrepancy, reconciliation_status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCashSessionRepository struct {
	BaseRepository
}

func newPgxCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryWithTx {
	return &PgxCashSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCashSessionRepository implements portsrepo.CashSessionRepositoryWithTx
var _ portsrepo.CashSessionRepositoryWithTx = (*PgxCashSessionRepository)(nil)

func scanCashSession(row pgx.Row) (*domain.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.EmployeeID,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.Note,
		&m.ExpectedBalance,
		&m.Discrepancy,
		&m.ReconciliationStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	session := mapping.ToDomainCashSession(m)
	return &session, nil
}

func (r *PgxCashSessionRepository) findOne(q pgx.Row, what string) (*domain.CashSession, error) {
	session, err := scanCashSession(q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(what)
		}
		return nil, fmt.Errorf("failed to find %s: %w", what, err)
	}
	return session, nil
}

// FindSessionByID retrieves a session without its entries.
func (r *PgxCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	if !isUUID(sessionID) {
		return nil, apperrors.NewNotFoundError("cash session " + sessionID)
	}
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1;`
	return r.findOne(r.Pool.QueryRow(ctx, query, sessionID), "cash session "+sessionID)
}

// FindOpenSessionByEmployee returns the employee's open session.
func (r *PgxCashSessionRepository) FindOpenSessionByEmployee(ctx context.Context, employeeID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE employee_id = $1 AND closed_at IS NULL;`
	return r.findOne(r.Pool.QueryRow(ctx, query, employeeID), "open cash session for employee "+employeeID)
}

// ListSessions retrieves sessions newest-first using keyset pagination on (opened_at, session_id).
func (r *PgxCashSessionRepository) ListSessions(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE TRUE`
	args := []interface{}{}

	if employeeID != nil {
		args = append(args, *employeeID)
		query += ` AND employee_id = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastOpenedAt, lastSessionID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		if !isUUID(lastSessionID) {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastOpenedAt, lastSessionID)
		query += ` AND (opened_at, session_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY opened_at DESC, session_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query cash sessions", err)
	}
	defer rows.Close()

	sessions := make([]domain.CashSession, 0, fetchLimit)
	for rows.Next() {
		session, scanErr := scanCashSession(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan cash session row", scanErr)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating cash session rows", err)
	}

	var newNextToken *string
	if len(sessions) > limit {
		last := sessions[limit-1]
		token := pagination.EncodeToken(last.OpenedAt, last.SessionID)
		newNextToken = &token
		sessions = sessions[:limit]
	}
	return sessions, newNextToken, nil
}

// LockEmployeeInTx takes a transaction-scoped advisory lock keyed on the employee.
func (r *PgxCashSessionRepository) LockEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return nil
}

func (r *PgxCashSessionRepository) FindOpenSessionByEmployeeInTx(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE employee_id = $1 AND closed_at IS NULL;`
	return r.findOne(tx.QueryRow(ctx, query, employeeID), "open cash session for employee "+employeeID)
}

// SaveSessionInTx inserts an open session. The partial unique index turns a lost race into AlreadyOpenError.
func (r *PgxCashSessionRepository) SaveSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	query := `
		INSERT INTO cash_sessions (
			session_id, employee_id, opened_at, opening_balance,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.SessionID,
		m.EmployeeID,
		m.OpenedAt,
		m.OpeningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, openSessionIndex) {
			return apperrors.NewAlreadyOpenError(m.EmployeeID, "")
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: cash session %s already exists", apperrors.ErrDuplicate, m.SessionID)
		}
		return fmt.Errorf("failed to save cash session %s: %w", m.SessionID, err)
	}
	return nil
}

// FindSessionByIDForUpdate loads the session holding a row lock until tx ends.
func (r *PgxCashSessionRepository) FindSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	if !isUUID(sessionID) {
		return nil, apperrors.NewNotFoundError("cash session " + sessionID)
	}
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`
	return r.findOne(tx.QueryRow(ctx, query, sessionID), "cash session "+sessionID)
}

// CloseSessionInTx stamps the terminal state. The closed_at IS NULL guard keeps a close from being rewritten.
func (r *PgxCashSessionRepository) CloseSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	query := `
		UPDATE cash_sessions
		SET closed_at = $2, closing_balance = $3, note = $4,
		    expected_balance = $5, discrepancy = $6, reconciliation_status = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE session_id = $1 AND closed_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.SessionID,
		m.ClosedAt,
		m.ClosingBalance,
		m.Note,
		m.ExpectedBalance,
		m.Discrepancy,
		m.ReconciliationStatus,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to close cash session %s: %w", m.SessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("cash session %s: %w", m.SessionID, apperrors.ErrAlreadyClosed)
	}
	return nil
}
