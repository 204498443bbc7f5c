package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gatherline/server/internal/api/problem"
	"github.com/gatherline/server/internal/live"
)

// handleSubscription attaches the client to a live channel and streams
// envelopes as Server-Sent Events until the client disconnects. The
// attachment is deregistered before the handler returns.
func (h *OperationsHandler) handleSubscription(w http.ResponseWriter, r *http.Request, req OperationRequest) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		err := errors.New("response writer does not support streaming")
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeInternalError, "Streaming unsupported", err, h.env)
		return err
	}

	stream, err := h.mux.Stream(r.Context(), req.Operation)
	if err != nil {
		var unknown live.ErrUnknownChannel
		if errors.As(err, &unknown) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeUnsupported, "Unknown channel", err, h.env)
			return err
		}
		return h.writeError(w, r, err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Debug().Str("channel", req.Operation).Msg("subscription attached")

	for env := range stream {
		payload, err := json.Marshal(env)
		if err != nil {
			h.logger.Error().Err(err).Str("channel", env.Channel).Msg("encode envelope")
			continue
		}
		fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", env.Channel, env.Seq, payload)
		flusher.Flush()
	}

	h.logger.Debug().Str("channel", req.Operation).Msg("subscription detached")
	return nil
}
