package sqlite

import (
	"context"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

// Both statements are single upserts against the row pinned to id 1, so
// creation, read and increment never race with each other.
const (
	readVisits = `INSERT INTO visits(id, count) VALUES(?, 1)
        ON CONFLICT(id) DO UPDATE SET count = visits.count
        RETURNING count`
	incrementVisits = `INSERT INTO visits(id, count) VALUES(?, 1)
        ON CONFLICT(id) DO UPDATE SET count = visits.count + 1
        RETURNING count`
)

// VisitCount returns the current count, creating the counter at 1 if needed.
func (s *Store) VisitCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, readVisits, models.VisitID).Scan(&count); err != nil {
		return 0, storage.Failure("read visits", err)
	}
	return count, nil
}

// IncrementVisits adds one visit and returns the stored count.
func (s *Store) IncrementVisits(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, incrementVisits, models.VisitID).Scan(&count); err != nil {
		return 0, storage.Failure("increment visits", err)
	}
	return count, nil
}
