// Package service is the boundary between transports and the stores. It
// composes the party store, task store and visit counter, bounds every
// storage call with a timeout and guarantees that every error it returns
// belongs to the storage error taxonomy.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

// DefaultTimeout bounds a single storage call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// PartyStore owns contact records.
type PartyStore interface {
	ListParties(ctx context.Context) ([]models.Party, error)
	FirstParty(ctx context.Context) (models.Party, error)
	CountParties(ctx context.Context) (int, error)
	CreateParty(ctx context.Context, p models.Party) (models.Party, error)
	CreateParties(ctx context.Context, parties []models.Party) (int, error)
	DeleteParty(ctx context.Context, id int64) error
}

// TaskStore owns work items.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// VisitCounter owns the singleton visit counter.
type VisitCounter interface {
	VisitCount(ctx context.Context) (int64, error)
	IncrementVisits(ctx context.Context) (int64, error)
}

// Backend is a storage implementation that provides all three stores.
type Backend interface {
	PartyStore
	TaskStore
	VisitCounter
	Ping(ctx context.Context) error
	Close() error
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the bound applied to each storage call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service exposes the operations consumed by the presentation layer.
type Service struct {
	parties PartyStore
	tasks   TaskStore
	visits  VisitCounter
	pinger  func(context.Context) error
	timeout time.Duration
	logger  *slog.Logger
}

// New composes the three stores into a Service.
func New(parties PartyStore, tasks TaskStore, visits VisitCounter, opts ...Option) *Service {
	s := &Service{
		parties: parties,
		tasks:   tasks,
		visits:  visits,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromBackend builds a Service whose stores and health check all come from b.
func NewFromBackend(b Backend, opts ...Option) *Service {
	s := New(b, b, b, opts...)
	s.pinger = b.Ping
	return s
}

// call runs fn under the storage timeout and classifies its error.
func call[T any](ctx context.Context, s *Service, op string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := fn(ctx)
	if err != nil {
		err = storage.Failure(op, err)
		s.logger.DebugContext(ctx, "store call failed", slog.String("op", op), slog.String("error", err.Error()))
	}
	return v, err
}

// Ping reports whether the backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	_, err := call(ctx, s, "ping", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.pinger(ctx)
	})
	return err
}

// ListParties returns all parties ordered by first name.
func (s *Service) ListParties(ctx context.Context) ([]models.Party, error) {
	return call(ctx, s, "list parties", s.parties.ListParties)
}

// FirstParty returns the default assignment target.
func (s *Service) FirstParty(ctx context.Context) (models.Party, error) {
	return call(ctx, s, "first party", s.parties.FirstParty)
}

// CreateParty validates and stores a single party.
func (s *Service) CreateParty(ctx context.Context, p models.Party) (models.Party, error) {
	if err := storage.ValidateParty(p); err != nil {
		return models.Party{}, err
	}
	return call(ctx, s, "create party", func(ctx context.Context) (models.Party, error) {
		return s.parties.CreateParty(ctx, p)
	})
}

// DeleteParty removes a party that has no tasks.
func (s *Service) DeleteParty(ctx context.Context, id int64) error {
	_, err := call(ctx, s, "delete party", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.parties.DeleteParty(ctx, id)
	})
	return err
}

// SeedParties bulk inserts parties. Unless force is set, nothing is written
// when any party already exists. It returns how many parties were inserted.
func (s *Service) SeedParties(ctx context.Context, parties []models.Party, force bool) (int, error) {
	if !force {
		n, err := call(ctx, s, "count parties", s.parties.CountParties)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			s.logger.InfoContext(ctx, "parties already present, skipping seed", slog.Int("existing", n))
			return 0, nil
		}
	}
	return call(ctx, s, "create parties", func(ctx context.Context) (int, error) {
		return s.parties.CreateParties(ctx, parties)
	})
}

// ListTasks returns all tasks joined with their party, most urgent first.
func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return call(ctx, s, "list tasks", s.tasks.ListTasks)
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	JobDescription string
	Priority       models.Priority
	NotifyVia      models.NotifyVia
	PartyID        int64
}

// CreateTask validates the input and stores a task for an existing party.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (models.Task, error) {
	t := models.Task{
		JobDescription: in.JobDescription,
		Priority:       in.Priority,
		NotifyVia:      in.NotifyVia,
		PartyID:        in.PartyID,
	}
	if err := storage.ValidateTask(t); err != nil {
		return models.Task{}, err
	}
	return call(ctx, s, "create task", func(ctx context.Context) (models.Task, error) {
		return s.tasks.CreateTask(ctx, t)
	})
}

// DeleteTask removes a task. A missing id yields storage.ErrNotFound.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	_, err := call(ctx, s, "delete task", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.tasks.DeleteTask(ctx, id)
	})
	return err
}

// VisitCount returns the visit count without incrementing it.
func (s *Service) VisitCount(ctx context.Context) (int64, error) {
	return call(ctx, s, "visit count", s.visits.VisitCount)
}

// IncrementVisits records a visit and returns the new count.
func (s *Service) IncrementVisits(ctx context.Context) (int64, error) {
	return call(ctx, s, "increment visits", s.visits.IncrementVisits)
}
