package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

func TestDefault(t *testing.T) {
	parties, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if len(parties) != 5 {
		t.Fatalf("got %d parties, want 5", len(parties))
	}
	if parties[0].FirstName != "Rohit" || parties[0].Type != models.PartyTypeClient {
		t.Errorf("first = %+v", parties[0])
	}
	if parties[1].Mobile2 != nil {
		t.Errorf("Suresh mobile2 = %q, want nil", *parties[1].Mobile2)
	}
	for _, p := range parties {
		if err := storage.ValidateParty(p); err != nil {
			t.Errorf("%s: %v", p.FirstName, err)
		}
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := "parties:\n  - firstName: A\n    nickname: B\n"
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load(strings.NewReader("parties: []\n")); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parties.yaml")
	doc := "parties:\n  - firstName: Kunal\n    secondName: Patel\n    mobile1: \"1\"\n    status: inactive\n    type: vendor\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	parties, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(parties) != 1 || parties[0].Status != models.PartyInactive {
		t.Errorf("got %+v", parties)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
