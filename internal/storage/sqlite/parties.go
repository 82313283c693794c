package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

const partyColumns = `id, first_name, second_name, mobile1, mobile2, email, address, status, type`

// ListParties retrieves all parties ordered by first name.
func (s *Store) ListParties(ctx context.Context) ([]models.Party, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY first_name ASC, id ASC`)
	if err != nil {
		return nil, storage.Failure("list parties", err)
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, storage.Failure("scan party", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Failure("list parties", err)
	}
	return parties, nil
}

// FirstParty returns the party with the lowest id.
func (s *Store) FirstParty(ctx context.Context) (models.Party, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY id ASC LIMIT 1`)
	p, err := scanParty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Party{}, fmt.Errorf("first party: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Party{}, storage.Failure("first party", err)
	}
	return p, nil
}

// GetParty fetches a single party by id.
func (s *Store) GetParty(ctx context.Context, id int64) (models.Party, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = ?`, id)
	p, err := scanParty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Party{}, storage.NotFound("party", id)
	}
	if err != nil {
		return models.Party{}, storage.Failure("get party", err)
	}
	return p, nil
}

// CountParties returns how many parties exist.
func (s *Store) CountParties(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parties`).Scan(&n); err != nil {
		return 0, storage.Failure("count parties", err)
	}
	return n, nil
}

// CreateParty persists a single party after validating it.
func (s *Store) CreateParty(ctx context.Context, p models.Party) (models.Party, error) {
	if err := storage.ValidateParty(p); err != nil {
		return models.Party{}, err
	}
	res, err := s.db.ExecContext(ctx, insertParty, partyArgs(p)...)
	if err != nil {
		return models.Party{}, storage.Failure("insert party", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Party{}, storage.Failure("party id", err)
	}
	return s.GetParty(ctx, id)
}

// CreateParties inserts all records in one transaction and returns how many were written.
// Nothing is written when any record is rejected.
func (s *Store) CreateParties(ctx context.Context, parties []models.Party) (int, error) {
	for i, p := range parties {
		if err := storage.ValidateParty(p); err != nil {
			return 0, fmt.Errorf("party %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storage.Failure("begin party batch", err)
	}
	defer s.rollback(tx)

	stmt, err := tx.PrepareContext(ctx, insertParty)
	if err != nil {
		return 0, storage.Failure("prepare party insert", err)
	}
	defer stmt.Close()

	for _, p := range parties {
		if _, err := stmt.ExecContext(ctx, partyArgs(p)...); err != nil {
			return 0, storage.Failure("insert party", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, storage.Failure("commit party batch", err)
	}

	s.logger.Info("parties created", slog.Int("count", len(parties)))
	return len(parties), nil
}

// DeleteParty removes a party that no task references.
func (s *Store) DeleteParty(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Failure("begin party delete", err)
	}
	defer s.rollback(tx)

	var refs int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE party_id = ?`, id).Scan(&refs); err != nil {
		return storage.Failure("count party tasks", err)
	}
	if refs > 0 {
		return fmt.Errorf("party %d is assigned %d task(s): %w", id, refs, storage.ErrReference)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("party %d is still referenced: %w", id, storage.ErrReference)
	}
	if err != nil {
		return storage.Failure("delete party", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storage.Failure("delete party", err)
	}
	if affected == 0 {
		return storage.NotFound("party", id)
	}
	return storage.Failure("commit party delete", tx.Commit())
}

const insertParty = `INSERT INTO parties(first_name, second_name, mobile1, mobile2, email, address, status, type)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`

func partyArgs(p models.Party) []any {
	var mobile2 any
	if p.Mobile2 != nil && strings.TrimSpace(*p.Mobile2) != "" {
		mobile2 = strings.TrimSpace(*p.Mobile2)
	}
	return []any{
		strings.TrimSpace(p.FirstName),
		strings.TrimSpace(p.SecondName),
		strings.TrimSpace(p.Mobile1),
		mobile2,
		strings.TrimSpace(p.Email),
		strings.TrimSpace(p.Address),
		p.Status,
		strings.TrimSpace(p.Type),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParty(row scanner) (models.Party, error) {
	var p models.Party
	err := row.Scan(&p.ID, &p.FirstName, &p.SecondName, &p.Mobile1, &p.Mobile2, &p.Email, &p.Address, &p.Status, &p.Type)
	return p, err
}
