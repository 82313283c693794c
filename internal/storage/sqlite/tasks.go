package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

// ListTasks returns every task joined with its party, most urgent first and
// oldest first within a priority.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT t.id, t.job_description, t.priority, t.notify_via, t.party_id, t.created_at,
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
			t       models.Task
			partyID sql.NullInt64
			first   sql.NullString
			second  sql.NullString
			mobile1 sql.NullString
			mobile2 sql.NullString
			email   sql.NullString
			address sql.NullString
			status  sql.NullString
			ptype   sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.JobDescription, &t.Priority, &t.NotifyVia, &t.PartyID, &t.CreatedAt,
			&partyID, &first, &second, &mobile1, &mobile2, &email, &address, &status, &ptype); err != nil {
			return nil, storage.Failure("scan task", err)
		}
		if !partyID.Valid {
			return nil, fmt.Errorf("task %d references missing party %d: %w", t.ID, t.PartyID, storage.ErrStorage)
		}
		p := &models.Party{
			ID:         partyID.Int64,
			FirstName:  first.String,
			SecondName: second.String,
			Mobile1:    mobile1.String,
			Email:      email.String,
			Address:    address.String,
			Status:     models.PartyStatus(status.String),
			Type:       ptype.String,
		}
		if mobile2.Valid {
			p.Mobile2 = &mobile2.String
		}
		t.Party = p
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, storage.Failure("begin task insert", err)
	}
	defer s.rollback(tx)

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM parties WHERE id = ?`, t.PartyID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("party %d does not exist: %w", t.PartyID, storage.ErrReference)
	}
	if err != nil {
		return models.Task{}, storage.Failure("check party", err)
	}

	createdAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `INSERT INTO tasks(job_description, priority, notify_via, party_id, created_at) VALUES(?, ?, ?, ?, ?)`,
		strings.TrimSpace(t.JobDescription), t.Priority, t.NotifyVia, t.PartyID, createdAt)
	if isForeignKeyViolation(err) {
		return models.Task{}, fmt.Errorf("party %d does not exist: %w", t.PartyID, storage.ErrReference)
	}
	if err != nil {
		return models.Task{}, storage.Failure("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, storage.Failure("task id", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, storage.Failure("commit task insert", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `SELECT id, job_description, priority, notify_via, party_id, created_at FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.JobDescription, &t.Priority, &t.NotifyVia, &t.PartyID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, storage.NotFound("task", id)
	}
	if err != nil {
		return models.Task{}, storage.Failure("get task", err)
	}
	return t, nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return storage.Failure("delete task", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storage.Failure("delete task", err)
	}
	if affected == 0 {
		return storage.NotFound("task", id)
	}
	return nil
}
