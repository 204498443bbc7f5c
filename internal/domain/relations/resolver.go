// Package relations computes cross-collection associations at read time.
// There are no stored back-pointers and no caches: every accessor scans the
// sibling collection's live state at the moment it is called, so results are
// always consistent with the most recent completed write. Dangling references
// resolve to nil or an empty slice, never an error.
package relations

import (
	"context"

	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
)

// Read-side views of the four collections. The resolver never mutates.
type (
	AccountReader interface {
		List(ctx context.Context) []accounts.Account
	}
	EventReader interface {
		List(ctx context.Context) []events.Event
	}
	LocationReader interface {
		List(ctx context.Context) []locations.Location
	}
	ParticipationReader interface {
		List(ctx context.Context) []participations.Participation
	}
)

// Resolver derives entity associations by equality scan.
type Resolver struct {
	accounts       AccountReader
	events         EventReader
	locations      LocationReader
	participations ParticipationReader
}

func NewResolver(a AccountReader, e EventReader, l LocationReader, p ParticipationReader) *Resolver {
	return &Resolver{accounts: a, events: e, locations: l, participations: p}
}

// EventOwner returns the account owning ev, or nil when the reference
// dangles.
func (r *Resolver) EventOwner(ctx context.Context, ev events.Event) *accounts.Account {
	for _, acct := range r.accounts.List(ctx) {
		if acct.ID == ev.OwnerID {
			return &acct
		}
	}
	return nil
}

// EventLocation returns the location of ev, or nil when the reference
// dangles.
func (r *Resolver) EventLocation(ctx context.Context, ev events.Event) *locations.Location {
	for _, loc := range r.locations.List(ctx) {
		if loc.ID == ev.LocationID {
			return &loc
		}
	}
	return nil
}

// EventParticipations returns every participation attached to ev, in
// insertion order.
func (r *Resolver) EventParticipations(ctx context.Context, ev events.Event) []participations.Participation {
	out := []participations.Participation{}
	for _, part := range r.participations.List(ctx) {
		if part.EventID == ev.ID {
			out = append(out, part)
		}
	}
	return out
}

// AccountEvents returns every event owned by acct, in insertion order.
func (r *Resolver) AccountEvents(ctx context.Context, acct accounts.Account) []events.Event {
	out := []events.Event{}
	for _, ev := range r.events.List(ctx) {
		if ev.OwnerID == acct.ID {
			out = append(out, ev)
		}
	}
	return out
}

// AccountParticipations returns every participation of acct, in insertion
// order.
func (r *Resolver) AccountParticipations(ctx context.Context, acct accounts.Account) []participations.Participation {
	out := []participations.Participation{}
	for _, part := range r.participations.List(ctx) {
		if part.AccountID == acct.ID {
			out = append(out, part)
		}
	}
	return out
}

// LocationEvents returns every event held at loc, in insertion order.
func (r *Resolver) LocationEvents(ctx context.Context, loc locations.Location) []events.Event {
	out := []events.Event{}
	for _, ev := range r.events.List(ctx) {
		if ev.LocationID == loc.ID {
			out = append(out, ev)
		}
	}
	return out
}

// ParticipationAccount returns the account behind part, or nil when the
// reference dangles.
func (r *Resolver) ParticipationAccount(ctx context.Context, part participations.Participation) *accounts.Account {
	for _, acct := range r.accounts.List(ctx) {
		if acct.ID == part.AccountID {
			return &acct
		}
	}
	return nil
}

// ParticipationEvent returns the event behind part, or nil when the reference
// dangles.
func (r *Resolver) ParticipationEvent(ctx context.Context, part participations.Participation) *events.Event {
	for _, ev := range r.events.List(ctx) {
		if ev.ID == part.EventID {
			return &ev
		}
	}
	return nil
}
