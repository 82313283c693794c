package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
	"taskdesk/internal/storage/sqlite"
)

func testSetup(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return NewFromBackend(store, WithTimeout(2*time.Second))
}

func seedRohit(t *testing.T, svc *Service) models.Party {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.SeedParties(ctx, []models.Party{{
		FirstName: "Rohit", SecondName: "Sharma", Mobile1: "1234567890",
		Email: "rohit.sharma@example.com", Address: "House 10, Lajpat Nagar, New Delhi",
		Status: models.PartyActive, Type: models.PartyTypeClient,
	}}, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := svc.FirstParty(ctx)
	if err != nil {
		t.Fatalf("first party: %v", err)
	}
	return p
}

func TestRohitScenario(t *testing.T) {
	svc := testSetup(t)
	ctx := context.Background()
	p := seedRohit(t, svc)

	created, err := svc.CreateTask(ctx, CreateTaskInput{
		JobDescription: "Call client", Priority: models.PriorityHigh, NotifyVia: models.NotifySMS, PartyID: p.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.PartyID != p.ID {
		t.Errorf("party_id = %d, want %d", created.PartyID, p.ID)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].JobDescription != "Call client" {
		t.Errorf("description = %q", tasks[0].JobDescription)
	}
	if tasks[0].Party.FirstName != "Rohit" {
		t.Errorf("party first name = %q, want Rohit", tasks[0].Party.FirstName)
	}
}

func TestCreateTaskFailures(t *testing.T) {
	svc := testSetup(t)
	ctx := context.Background()
	p := seedRohit(t, svc)

	_, err := svc.CreateTask(ctx, CreateTaskInput{
		JobDescription: "Call", Priority: models.PriorityHigh, NotifyVia: models.NotifySMS, PartyID: p.ID,
	})
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("short description: err = %v, want validation failure", err)
	}

	_, err = svc.CreateTask(ctx, CreateTaskInput{
		JobDescription: "Call client", Priority: models.PriorityHigh, NotifyVia: models.NotifySMS, PartyID: p.ID + 100,
	})
	if !errors.Is(err, storage.ErrReference) {
		t.Errorf("unknown party: err = %v, want reference failure", err)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestDeleteTaskTwice(t *testing.T) {
	svc := testSetup(t)
	ctx := context.Background()
	p := seedRohit(t, svc)
	task, err := svc.CreateTask(ctx, CreateTaskInput{
		JobDescription: "Send invoice", Priority: models.PriorityLow, NotifyVia: models.NotifyEmail, PartyID: p.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want not found", err)
	}
}

func TestSeedPartiesSkipsWhenPresent(t *testing.T) {
	svc := testSetup(t)
	ctx := context.Background()
	seedRohit(t, svc)

	extra := []models.Party{{FirstName: "Amit", SecondName: "Verma", Mobile1: "9090909090", Status: models.PartyActive, Type: "partner"}}
	n, err := svc.SeedParties(ctx, extra, false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 0 {
		t.Errorf("inserted = %d, want 0", n)
	}

	n, err = svc.SeedParties(ctx, extra, true)
	if err != nil {
		t.Fatalf("forced seed: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}

	parties, err := svc.ListParties(ctx)
	if err != nil {
		t.Fatalf("list parties: %v", err)
	}
	if len(parties) != 2 || parties[0].FirstName != "Amit" {
		t.Errorf("parties = %+v, want Amit first", parties)
	}
}

func TestVisitCounter(t *testing.T) {
	svc := testSetup(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n, err := svc.VisitCount(ctx)
		if err != nil {
			t.Fatalf("visit count: %v", err)
		}
		if n != 1 {
			t.Errorf("count = %d, want 1", n)
		}
	}

	const workers = 20
	var wg sync.WaitGroup
	seen := make(map[int64]bool)
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := svc.IncrementVisits(ctx)
			if err != nil {
				t.Errorf("increment: %v", err)
				return
			}
			mu.Lock()
			if seen[n] {
				t.Errorf("duplicate count %d", n)
			}
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	for v := int64(2); v <= workers+1; v++ {
		if !seen[v] {
			t.Errorf("missing count %d", v)
		}
	}
}

// blockingStore waits for the caller's deadline on every call.
type blockingStore struct{}

func (blockingStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) CreateTask(ctx context.Context, _ models.Task) (models.Task, error) {
	<-ctx.Done()
	return models.Task{}, ctx.Err()
}

func (blockingStore) DeleteTask(ctx context.Context, _ int64) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestTimeoutIsStorageFailure(t *testing.T) {
	svc := New(nil, blockingStore{}, nil, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := svc.ListTasks(context.Background())
	if !errors.Is(err, storage.ErrStorage) {
		t.Fatalf("err = %v, want storage failure", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded cause", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %s, want it bounded by the timeout", elapsed)
	}
}

func TestPingWithoutBackend(t *testing.T) {
	svc := New(nil, nil, nil)
	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}
