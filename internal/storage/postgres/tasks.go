package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

// ListTasks returns every task joined with its party, most urgent first and
// oldest first within a priority.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT t.id, t.job_description, t.priority, t.notify_via, t.party_id, t.created_at,
			p.id, p.first_name, p.second_name, p.mobile1, p.mobile2, p.email, p.address, p.status, p.type
		FROM tasks t LEFT JOIN parties p ON p.id = t.party_id
		ORDER BY `+storage.TaskOrder)
	if err != nil {
		return nil, storage.Failure("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			t                                           models.Task
			priority, notify                            string
			partyID                                     *int64
			first, second, mobile1, email, addr, status *string
			ptype, mobile2                              *string
		)
		if err := rows.Scan(&t.ID, &t.JobDescription, &priority, &notify, &t.PartyID, &t.CreatedAt,
			&partyID, &first, &second, &mobile1, &mobile2, &email, &addr, &status, &ptype); err != nil {
			return nil, storage.Failure("scan task", err)
		}
		if partyID == nil {
			return nil, fmt.Errorf("task %d references missing party %d: %w", t.ID, t.PartyID, storage.ErrStorage)
		}
		t.Priority = models.Priority(priority)
		t.NotifyVia = models.NotifyVia(notify)
		t.Party = &models.Party{
			ID:         *partyID,
			FirstName:  deref(first),
			SecondName: deref(second),
			Mobile1:    deref(mobile1),
			Mobile2:    mobile2,
			Email:      deref(email),
			Address:    deref(addr),
			Status:     models.PartyStatus(deref(status)),
			Type:       deref(ptype),
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Failure("list tasks", err)
	}
	return tasks, nil
}

// CreateTask inserts a new task for an existing party.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if err := storage.ValidateTask(t); err != nil {
		return models.Task{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Task{}, storage.Failure("begin task insert", err)
	}
	defer s.rollback(ctx, tx)

	// Lock the party row so it cannot be deleted before the insert commits.
	var exists int64
	err = tx.QueryRow(ctx, `SELECT id FROM parties WHERE id = $1 FOR SHARE`, t.PartyID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Task{}, fmt.Errorf("party %d does not exist: %w", t.PartyID, storage.ErrReference)
	}
	if err != nil {
		return models.Task{}, storage.Failure("check party", err)
	}

	created := models.Task{
		JobDescription: strings.TrimSpace(t.JobDescription),
		Priority:       t.Priority,
		NotifyVia:      t.NotifyVia,
		PartyID:        t.PartyID,
	}
	err = tx.QueryRow(ctx, `INSERT INTO tasks (job_description, priority, notify_via, party_id, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		created.JobDescription, string(created.Priority), string(created.NotifyVia), created.PartyID, time.Now().UTC()).
		Scan(&created.ID, &created.CreatedAt)
	if isForeignKeyViolation(err) {
		return models.Task{}, fmt.Errorf("party %d does not exist: %w", t.PartyID, storage.ErrReference)
	}
	if err != nil {
		return models.Task{}, storage.Failure("insert task", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Task{}, storage.Failure("commit task insert", err)
	}
	return created, nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return storage.Failure("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.NotFound("task", id)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
