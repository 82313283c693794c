package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

const partyColumns = `id, first_name, second_name, mobile1, mobile2, email, address, status, type`

const insertParty = `INSERT INTO parties (first_name, second_name, mobile1, mobile2, email, address, status, type)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// ListParties retrieves all parties ordered by first name.
func (s *Store) ListParties(ctx context.Context) ([]models.Party, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY first_name ASC, id ASC`)
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
	p, err := scanParty(s.pool.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties ORDER BY id ASC LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Party{}, fmt.Errorf("first party: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Party{}, storage.Failure("first party", err)
	}
	return p, nil
}

// CountParties returns how many parties exist.
func (s *Store) CountParties(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parties`).Scan(&n); err != nil {
		return 0, storage.Failure("count parties", err)
	}
	return n, nil
}

// CreateParty persists a single party after validating it.
func (s *Store) CreateParty(ctx context.Context, p models.Party) (models.Party, error) {
	if err := storage.ValidateParty(p); err != nil {
		return models.Party{}, err
	}
	created, err := scanParty(s.pool.QueryRow(ctx, insertParty+` RETURNING `+partyColumns, partyArgs(p)...))
	if err != nil {
		return models.Party{}, storage.Failure("insert party", err)
	}
	return created, nil
}

// CreateParties inserts all records in one transaction and returns how many were written.
func (s *Store) CreateParties(ctx context.Context, parties []models.Party) (int, error) {
	for i, p := range parties {
		if err := storage.ValidateParty(p); err != nil {
			return 0, fmt.Errorf("party %d: %w", i, err)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, storage.Failure("begin party batch", err)
	}
	defer s.rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, p := range parties {
		batch.Queue(insertParty, partyArgs(p)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, storage.Failure("insert parties", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, storage.Failure("commit party batch", err)
	}
	return len(parties), nil
}

// DeleteParty removes a party that no task references.
func (s *Store) DeleteParty(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("party %d is still referenced: %w", id, storage.ErrReference)
	}
	if err != nil {
		return storage.Failure("delete party", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.NotFound("party", id)
	}
	return nil
}

func partyArgs(p models.Party) []any {
	var mobile2 *string
	if p.Mobile2 != nil && strings.TrimSpace(*p.Mobile2) != "" {
		v := strings.TrimSpace(*p.Mobile2)
		mobile2 = &v
	}
	return []any{
		strings.TrimSpace(p.FirstName),
		strings.TrimSpace(p.SecondName),
		strings.TrimSpace(p.Mobile1),
		mobile2,
		strings.TrimSpace(p.Email),
		strings.TrimSpace(p.Address),
		string(p.Status),
		strings.TrimSpace(p.Type),
	}
}

func scanParty(row pgx.Row) (models.Party, error) {
	var (
		p      models.Party
		status string
	)
	err := row.Scan(&p.ID, &p.FirstName, &p.SecondName, &p.Mobile1, &p.Mobile2, &p.Email, &p.Address, &status, &p.Type)
	p.Status = models.PartyStatus(status)
	return p, err
}
