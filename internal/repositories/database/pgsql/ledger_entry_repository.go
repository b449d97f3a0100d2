package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	"github.com/SscSPs/barbershop_cashdrawer/internal/models"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, session_id, kind, amount, description, classification, justification,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerEntryRepository struct {
	BaseRepository
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryRepositoryFacade {
	return &PgxLedgerEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.SessionID,
		&m.Kind,
		&m.Amount,
		&m.Description,
		&m.Classification,
		&m.Justification,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

func findEntry(row pgx.Row, entryID string) (*domain.LedgerEntry, error) {
	entry, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ledger entry " + entryID)
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

func collectEntries(rows pgx.Rows, sessionID string) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row for session "+sessionID, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	if !isUUID(entryID) {
		return nil, apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	return findEntry(r.Pool.QueryRow(ctx, query, entryID), entryID)
}

// ListEntriesBySession returns entries in insertion order, optionally filtered by kind.
func (r *PgxLedgerEntryRepository) ListEntriesBySession(ctx context.Context, sessionID string, kind *domain.EntryKind) ([]domain.LedgerEntry, error) {
	if !isUUID(sessionID) {
		return []domain.LedgerEntry{}, nil
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE session_id = $1`
	args := []interface{}{sessionID}
	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY entry_seq ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for session "+sessionID, err)
	}
	return collectEntries(rows, sessionID)
}

func (r *PgxLedgerEntryRepository) FindEntryByIDInTx(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	if !isUUID(entryID) {
		return nil, apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	return findEntry(tx.QueryRow(ctx, query, entryID), entryID)
}

func (r *PgxLedgerEntryRepository) ListEntriesBySessionInTx(ctx context.Context, tx pgx.Tx, sessionID string) ([]domain.LedgerEntry, error) {
	if !isUUID(sessionID) {
		return []domain.LedgerEntry{}, nil
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE session_id = $1 ORDER BY entry_seq ASC;`
	rows, err := tx.Query(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for session "+sessionID, err)
	}
	return collectEntries(rows, sessionID)
}

func (r *PgxLedgerEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, session_id, kind, amount, description, classification, justification,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.SessionID,
		m.Kind,
		m.Amount,
		m.Description,
		m.Classification,
		m.Justification,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to save ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// UpdateEntryInTx rewrites the editable columns. Kind and session never change.
func (r *PgxLedgerEntryRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		UPDATE ledger_entries
		SET amount = $2, description = $3, classification = $4, justification = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.Amount,
		m.Description,
		m.Classification,
		m.Justification,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry " + m.EntryID)
	}
	return nil
}

func (r *PgxLedgerEntryRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	if !isUUID(entryID) {
		return apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	return nil
}
