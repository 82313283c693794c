package sqlite

import (
	"context"
	"errors"
	"testing"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

func TestListPartiesOrderedByFirstName(t *testing.T) {
	s := testSetup(t)
	for _, name := range []string{"Vikram", "Amit", "Rohit"} {
		mustInsertParty(t, s, name)
	}

	parties, err := s.ListParties(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Amit", "Rohit", "Vikram"}
	if len(parties) != len(want) {
		t.Fatalf("got %d parties, want %d", len(parties), len(want))
	}
	for i, name := range want {
		if parties[i].FirstName != name {
			t.Errorf("parties[%d] = %q, want %q", i, parties[i].FirstName, name)
		}
	}
}

func TestListPartiesEmpty(t *testing.T) {
	s := testSetup(t)
	parties, err := s.ListParties(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if parties == nil || len(parties) != 0 {
		t.Errorf("got %v, want empty non-nil slice", parties)
	}
}

func TestFirstPartyByID(t *testing.T) {
	s := testSetup(t)
	first := mustInsertParty(t, s, "Zed")
	mustInsertParty(t, s, "Amit")

	got, err := s.FirstParty(context.Background())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("id = %d, want %d", got.ID, first.ID)
	}
}

func TestFirstPartyEmpty(t *testing.T) {
	s := testSetup(t)
	_, err := s.FirstParty(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreatePartyMobile2(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()
	mobile2 := "8080808080"

	p, err := s.CreateParty(ctx, models.Party{
		FirstName: "Amit", SecondName: "Verma", Mobile1: "9090909090", Mobile2: &mobile2,
		Status: models.PartyActive, Type: models.PartyTypePartner,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Mobile2 == nil || *p.Mobile2 != mobile2 {
		t.Errorf("mobile2 = %v, want %q", p.Mobile2, mobile2)
	}

	q := mustInsertParty(t, s, "Suresh")
	if q.Mobile2 != nil {
		t.Errorf("mobile2 = %q, want nil", *q.Mobile2)
	}
}

func TestCreatePartyValidation(t *testing.T) {
	s := testSetup(t)
	_, err := s.CreateParty(context.Background(), models.Party{
		FirstName: "", SecondName: "Sharma", Mobile1: "1", Status: models.PartyActive, Type: "client",
	})
	var verr *storage.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if verr.Field != "firstName" {
		t.Errorf("field = %q, want firstName", verr.Field)
	}
}

func TestCreatePartiesAllOrNothing(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()
	good := models.Party{FirstName: "A", SecondName: "B", Mobile1: "1", Status: models.PartyActive, Type: "client"}
	bad := good
	bad.Status = "archived"

	if _, err := s.CreateParties(ctx, []models.Party{good, bad}); !errors.Is(err, storage.ErrValidation) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	n, err := s.CountParties(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	inserted, err := s.CreateParties(ctx, []models.Party{good, good})
	if err != nil {
		t.Fatalf("create parties: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}
}

func TestDeletePartyRestrictedByTasks(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()
	p := mustInsertParty(t, s, "Rohit")
	task := insertTask(t, s, p.ID, "Call client", models.PriorityHigh)

	if err := s.DeleteParty(ctx, p.ID); !errors.Is(err, storage.ErrReference) {
		t.Fatalf("err = %v, want reference failure", err)
	}
	if _, err := s.GetParty(ctx, p.ID); err != nil {
		t.Fatalf("party should survive: %v", err)
	}

	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := s.DeleteParty(ctx, p.ID); err != nil {
		t.Fatalf("delete party: %v", err)
	}
	if err := s.DeleteParty(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
