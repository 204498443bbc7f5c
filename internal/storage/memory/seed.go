package memory

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/ids"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
)

// SeedDocument is the startup seed: four ordered collections, loaded once
// into the store and never written back. YAML or JSON.
type SeedDocument struct {
	Accounts       []accounts.Account             `json:"accounts"`
	Events         []events.Event                 `json:"events"`
	Locations      []locations.Location           `json:"locations"`
	Participations []participations.Participation `json:"participations"`
}

// LoadSeedFile reads and parses a seed document.
func LoadSeedFile(path string) (SeedDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedDocument{}, fmt.Errorf("read seed file: %w", err)
	}

	var doc SeedDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return SeedDocument{}, fmt.Errorf("parse seed file: %w", err)
	}
	return doc, nil
}

// Validate checks that every seed entity has an id and that ids are unique
// within their collection. Foreign-key fields are deliberately not checked;
// dangling references are legal and resolve to absent.
func (d SeedDocument) Validate() error {
	if err := uniqueIDs("accounts", d.Accounts, func(a accounts.Account) string { return a.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("events", d.Events, func(e events.Event) string { return e.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("locations", d.Locations, func(l locations.Location) string { return l.ID }); err != nil {
		return err
	}
	return uniqueIDs("participations", d.Participations, func(p participations.Participation) string { return p.ID })
}

func uniqueIDs[T any](collection string, items []T, idOf func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		id := ids.Normalize(idOf(item))
		if id == "" {
			return fmt.Errorf("%s[%d]: missing id", collection, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s[%d]: duplicate id %q", collection, i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Seed loads the document into the store, normalizing ids and preserving the
// document's ordering. It replaces whatever the store held.
func (s *Store) Seed(doc SeedDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	seedAccounts := make([]accounts.Account, len(doc.Accounts))
	for i, a := range doc.Accounts {
		a.ID = ids.Normalize(a.ID)
		seedAccounts[i] = a
	}
	seedEvents := make([]events.Event, len(doc.Events))
	for i, e := range doc.Events {
		e.ID = ids.Normalize(e.ID)
		seedEvents[i] = e
	}
	seedLocations := make([]locations.Location, len(doc.Locations))
	for i, l := range doc.Locations {
		l.ID = ids.Normalize(l.ID)
		seedLocations[i] = l
	}
	seedParticipations := make([]participations.Participation, len(doc.Participations))
	for i, p := range doc.Participations {
		p.ID = ids.Normalize(p.ID)
		seedParticipations[i] = p
	}

	if err := s.accounts.Restore(seedAccounts); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if err := s.events.Restore(seedEvents); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := s.locations.Restore(seedLocations); err != nil {
		return fmt.Errorf("seed locations: %w", err)
	}
	if err := s.participations.Restore(seedParticipations); err != nil {
		return fmt.Errorf("seed participations: %w", err)
	}
	return nil
}

// SeedFromFile loads path into the store. An empty path leaves the store
// empty.
func (s *Store) SeedFromFile(path string) error {
	if path == "" {
		return nil
	}
	doc, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	return s.Seed(doc)
}
