package memory

import (
	"context"

	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/ids"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
)

// Store bundles the four entity collections and exposes them through the
// domain repository contracts. It holds all data in memory for the process
// lifetime; there is no size bound and no persistence.
type Store struct {
	accounts       *Collection[accounts.Account]
	events         *Collection[events.Event]
	locations      *Collection[locations.Location]
	participations *Collection[participations.Participation]
}

func NewStore() *Store {
	return &Store{
		accounts: NewCollection(
			func(a accounts.Account) string { return a.ID },
			func(a *accounts.Account, id string) { a.ID = id },
		),
		events: NewCollection(
			func(e events.Event) string { return e.ID },
			func(e *events.Event, id string) { e.ID = id },
		),
		locations: NewCollection(
			func(l locations.Location) string { return l.ID },
			func(l *locations.Location, id string) { l.ID = id },
		),
		participations: NewCollection(
			func(p participations.Participation) string { return p.ID },
			func(p *participations.Participation, id string) { p.ID = id },
		),
	}
}

// Counts reports the current size of each collection, keyed by collection
// name. Used by the metrics collector.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"accounts":       s.accounts.Len(),
		"events":         s.events.Len(),
		"locations":      s.locations.Len(),
		"participations": s.participations.Len(),
	}
}

func (s *Store) Accounts() *AccountRepository { return &AccountRepository{c: s.accounts} }
func (s *Store) Events() *EventRepository     { return &EventRepository{c: s.events} }
func (s *Store) Locations() *LocationRepository {
	return &LocationRepository{c: s.locations}
}
func (s *Store) Participations() *ParticipationRepository {
	return &ParticipationRepository{c: s.participations}
}

// AccountRepository implements accounts.Repository over the in-memory
// collection.
type AccountRepository struct {
	c *Collection[accounts.Account]
}

func (r *AccountRepository) List(ctx context.Context) []accounts.Account {
	return r.c.List()
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	acct, ok := r.c.Get(ids.Normalize(id))
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return &acct, nil
}

func (r *AccountRepository) Insert(ctx context.Context, params accounts.CreateParams) (*accounts.Account, error) {
	acct, err := r.c.Insert(accounts.Account{
		Username: params.Username,
		Email:    params.Email,
	})
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountRepository) Patch(ctx context.Context, id string, params accounts.UpdateParams) (*accounts.Account, error) {
	acct, ok := r.c.Patch(ids.Normalize(id), params.Apply)
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return &acct, nil
}

func (r *AccountRepository) Remove(ctx context.Context, id string) (*accounts.Account, error) {
	acct, ok := r.c.Remove(ids.Normalize(id))
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return &acct, nil
}

func (r *AccountRepository) Clear(ctx context.Context) []accounts.Account {
	return r.c.Clear()
}

// EventRepository implements events.Repository over the in-memory collection.
type EventRepository struct {
	c *Collection[events.Event]
}

func (r *EventRepository) List(ctx context.Context) []events.Event {
	return r.c.List()
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	ev, ok := r.c.Get(ids.Normalize(id))
	if !ok {
		return nil, events.ErrNotFound
	}
	return &ev, nil
}

func (r *EventRepository) Insert(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	ev, err := r.c.Insert(events.Event{
		Title:       params.Title,
		Description: params.Description,
		Date:        params.Date,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		OwnerID:     params.OwnerID,
		LocationID:  params.LocationID,
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepository) Patch(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	ev, ok := r.c.Patch(ids.Normalize(id), params.Apply)
	if !ok {
		return nil, events.ErrNotFound
	}
	return &ev, nil
}

func (r *EventRepository) Remove(ctx context.Context, id string) (*events.Event, error) {
	ev, ok := r.c.Remove(ids.Normalize(id))
	if !ok {
		return nil, events.ErrNotFound
	}
	return &ev, nil
}

func (r *EventRepository) Clear(ctx context.Context) []events.Event {
	return r.c.Clear()
}

// LocationRepository implements locations.Repository over the in-memory
// collection.
type LocationRepository struct {
	c *Collection[locations.Location]
}

func (r *LocationRepository) List(ctx context.Context) []locations.Location {
	return r.c.List()
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*locations.Location, error) {
	loc, ok := r.c.Get(ids.Normalize(id))
	if !ok {
		return nil, locations.ErrNotFound
	}
	return &loc, nil
}

func (r *LocationRepository) Insert(ctx context.Context, params locations.CreateParams) (*locations.Location, error) {
	loc, err := r.c.Insert(locations.Location{
		Name:        params.Name,
		Description: params.Description,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
	})
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) Patch(ctx context.Context, id string, params locations.UpdateParams) (*locations.Location, error) {
	loc, ok := r.c.Patch(ids.Normalize(id), params.Apply)
	if !ok {
		return nil, locations.ErrNotFound
	}
	return &loc, nil
}

func (r *LocationRepository) Remove(ctx context.Context, id string) (*locations.Location, error) {
	loc, ok := r.c.Remove(ids.Normalize(id))
	if !ok {
		return nil, locations.ErrNotFound
	}
	return &loc, nil
}

func (r *LocationRepository) Clear(ctx context.Context) []locations.Location {
	return r.c.Clear()
}

// ParticipationRepository implements participations.Repository over the
// in-memory collection.
type ParticipationRepository struct {
	c *Collection[participations.Participation]
}

func (r *ParticipationRepository) List(ctx context.Context) []participations.Participation {
	return r.c.List()
}

func (r *ParticipationRepository) GetByID(ctx context.Context, id string) (*participations.Participation, error) {
	part, ok := r.c.Get(ids.Normalize(id))
	if !ok {
		return nil, participations.ErrNotFound
	}
	return &part, nil
}

func (r *ParticipationRepository) Insert(ctx context.Context, params participations.CreateParams) (*participations.Participation, error) {
	part, err := r.c.Insert(participations.Participation{
		AccountID: params.AccountID,
		EventID:   params.EventID,
	})
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *ParticipationRepository) Patch(ctx context.Context, id string, params participations.UpdateParams) (*participations.Participation, error) {
	part, ok := r.c.Patch(ids.Normalize(id), params.Apply)
	if !ok {
		return nil, participations.ErrNotFound
	}
	return &part, nil
}

func (r *ParticipationRepository) Remove(ctx context.Context, id string) (*participations.Participation, error) {
	part, ok := r.c.Remove(ids.Normalize(id))
	if !ok {
		return nil, participations.ErrNotFound
	}
	return &part, nil
}

func (r *ParticipationRepository) Clear(ctx context.Context) []participations.Participation {
	return r.c.Clear()
}
