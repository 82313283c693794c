// Package seed loads party fixtures used to bootstrap an empty store.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"taskdesk/internal/models"
)

//go:embed parties.yaml
var defaultParties []byte

type partyRecord struct {
	FirstName  string  `yaml:"firstName"`
	SecondName string  `yaml:"secondName"`
	Mobile1    string  `yaml:"mobile1"`
	Mobile2    *string `yaml:"mobile2"`
	Email      string  `yaml:"email"`
	Address    string  `yaml:"address"`
	Status     string  `yaml:"status"`
	Type       string  `yaml:"type"`
}

type fixture struct {
	Parties []partyRecord `yaml:"parties"`
}

// Default returns the built-in parties.
func Default() ([]models.Party, error) {
	return Load(bytes.NewReader(defaultParties))
}

// LoadFile reads parties from a YAML file.
func LoadFile(path string) ([]models.Party, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML document with a top-level "parties" list.
func Load(r io.Reader) ([]models.Party, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	if len(fx.Parties) == 0 {
		return nil, fmt.Errorf("seed data has no parties")
	}

	parties := make([]models.Party, 0, len(fx.Parties))
	for _, rec := range fx.Parties {
		parties = append(parties, models.Party{
			FirstName:  rec.FirstName,
			SecondName: rec.SecondName,
			Mobile1:    rec.Mobile1,
			Mobile2:    rec.Mobile2,
			Email:      rec.Email,
			Address:    rec.Address,
			Status:     models.PartyStatus(rec.Status),
			Type:       rec.Type,
		})
	}
	return parties, nil
}
