package handlers

import (
	"context"
	"net/http"

	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
)

// Expanded representations embed the entity and attach requested relations,
// resolved against live state at response time.
type (
	expandedAccount struct {
		accounts.Account
		Events         []events.Event                 `json:"events,omitempty"`
		Participations []participations.Participation `json:"participations,omitempty"`
	}

	expandedEvent struct {
		events.Event
		Owner          *accounts.Account              `json:"owner,omitempty"`
		Location       *locations.Location            `json:"location,omitempty"`
		Participations []participations.Participation `json:"participations,omitempty"`
	}

	expandedLocation struct {
		locations.Location
		Events []events.Event `json:"events,omitempty"`
	}

	expandedParticipation struct {
		participations.Participation
		Account *accounts.Account `json:"account,omitempty"`
		Event   *events.Event     `json:"event,omitempty"`
	}
)

func (h *OperationsHandler) handleQuery(w http.ResponseWriter, r *http.Request, req OperationRequest) error {
	ctx := r.Context()

	switch req.Operation {
	case "listAccounts":
		list := h.accounts.List(ctx)
		out := make([]expandedAccount, 0, len(list))
		for _, acct := range list {
			out = append(out, h.expandAccount(ctx, acct, req.Expand))
		}
		writeData(w, http.StatusOK, out)
		return nil

	case "getAccount":
		acct, err := h.accounts.Get(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, h.expandAccount(ctx, *acct, req.Expand))
		return nil

	case "listEvents":
		list := h.events.List(ctx)
		out := make([]expandedEvent, 0, len(list))
		for _, ev := range list {
			out = append(out, h.expandEvent(ctx, ev, req.Expand))
		}
		writeData(w, http.StatusOK, out)
		return nil

	case "getEvent":
		ev, err := h.events.Get(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, h.expandEvent(ctx, *ev, req.Expand))
		return nil

	case "listLocations":
		list := h.locations.List(ctx)
		out := make([]expandedLocation, 0, len(list))
		for _, loc := range list {
			out = append(out, h.expandLocation(ctx, loc, req.Expand))
		}
		writeData(w, http.StatusOK, out)
		return nil

	case "getLocation":
		loc, err := h.locations.Get(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, h.expandLocation(ctx, *loc, req.Expand))
		return nil

	case "listParticipations":
		list := h.participations.List(ctx)
		out := make([]expandedParticipation, 0, len(list))
		for _, part := range list {
			out = append(out, h.expandParticipation(ctx, part, req.Expand))
		}
		writeData(w, http.StatusOK, out)
		return nil

	case "getParticipation":
		part, err := h.participations.Get(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, h.expandParticipation(ctx, *part, req.Expand))
		return nil
	}

	return h.unsupported(w, r, req)
}

func wantsExpand(expand []string, relation string) bool {
	for _, name := range expand {
		if name == relation {
			return true
		}
	}
	return false
}

func (h *OperationsHandler) expandAccount(ctx context.Context, acct accounts.Account, expand []string) expandedAccount {
	out := expandedAccount{Account: acct}
	if wantsExpand(expand, "events") {
		out.Events = h.resolver.AccountEvents(ctx, acct)
	}
	if wantsExpand(expand, "participations") {
		out.Participations = h.resolver.AccountParticipations(ctx, acct)
	}
	return out
}

func (h *OperationsHandler) expandEvent(ctx context.Context, ev events.Event, expand []string) expandedEvent {
	out := expandedEvent{Event: ev}
	if wantsExpand(expand, "owner") {
		out.Owner = h.resolver.EventOwner(ctx, ev)
	}
	if wantsExpand(expand, "location") {
		out.Location = h.resolver.EventLocation(ctx, ev)
	}
	if wantsExpand(expand, "participations") {
		out.Participations = h.resolver.EventParticipations(ctx, ev)
	}
	return out
}

func (h *OperationsHandler) expandLocation(ctx context.Context, loc locations.Location, expand []string) expandedLocation {
	out := expandedLocation{Location: loc}
	if wantsExpand(expand, "events") {
		out.Events = h.resolver.LocationEvents(ctx, loc)
	}
	return out
}

func (h *OperationsHandler) expandParticipation(ctx context.Context, part participations.Participation, expand []string) expandedParticipation {
	out := expandedParticipation{Participation: part}
	if wantsExpand(expand, "account") {
		out.Account = h.resolver.ParticipationAccount(ctx, part)
	}
	if wantsExpand(expand, "event") {
		out.Event = h.resolver.ParticipationEvent(ctx, part)
	}
	return out
}
