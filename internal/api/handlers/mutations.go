package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gatherline/server/internal/api/problem"
	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
)

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, fmt.Errorf("missing data payload")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func (h *OperationsHandler) handleMutation(w http.ResponseWriter, r *http.Request, req OperationRequest) error {
	ctx := r.Context()

	switch req.Operation {
	case "addAccount":
		params, err := decodePayload[accounts.CreateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		acct, err := h.accounts.Create(ctx, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusCreated, acct)
		return nil

	case "updateAccount":
		params, err := decodePayload[accounts.UpdateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		acct, err := h.accounts.Update(ctx, req.ID, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, acct)
		return nil

	case "deleteAccount":
		acct, err := h.accounts.Delete(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, acct)
		return nil

	case "deleteAllAccounts":
		writeData(w, http.StatusOK, h.accounts.DeleteAll(ctx))
		return nil

	case "addEvent":
		params, err := decodePayload[events.CreateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		ev, err := h.events.Create(ctx, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusCreated, ev)
		return nil

	case "updateEvent":
		params, err := decodePayload[events.UpdateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		ev, err := h.events.Update(ctx, req.ID, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, ev)
		return nil

	case "deleteEvent":
		ev, err := h.events.Delete(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, ev)
		return nil

	case "deleteAllEvents":
		writeData(w, http.StatusOK, h.events.DeleteAll(ctx))
		return nil

	case "addLocation":
		params, err := decodePayload[locations.CreateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		loc, err := h.locations.Create(ctx, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusCreated, loc)
		return nil

	case "updateLocation":
		params, err := decodePayload[locations.UpdateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		loc, err := h.locations.Update(ctx, req.ID, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, loc)
		return nil

	case "deleteLocation":
		loc, err := h.locations.Delete(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, loc)
		return nil

	case "deleteAllLocations":
		writeData(w, http.StatusOK, h.locations.DeleteAll(ctx))
		return nil

	case "addParticipation":
		params, err := decodePayload[participations.CreateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		part, err := h.participations.Create(ctx, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusCreated, part)
		return nil

	case "updateParticipation":
		params, err := decodePayload[participations.UpdateParams](req.Data)
		if err != nil {
			return h.badPayload(w, r, err)
		}
		part, err := h.participations.Update(ctx, req.ID, params)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, part)
		return nil

	case "deleteParticipation":
		part, err := h.participations.Delete(ctx, req.ID)
		if err != nil {
			return h.writeError(w, r, err)
		}
		writeData(w, http.StatusOK, part)
		return nil

	case "deleteAllParticipations":
		writeData(w, http.StatusOK, h.participations.DeleteAll(ctx))
		return nil
	}

	return h.unsupported(w, r, req)
}

func (h *OperationsHandler) badPayload(w http.ResponseWriter, r *http.Request, err error) error {
	problem.Write(w, r, http.StatusBadRequest, problem.TypeBadRequest, "Malformed mutation payload", err, h.env)
	return err
}
