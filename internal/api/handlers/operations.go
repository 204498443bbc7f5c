// Package handlers implements the single operations endpoint: queries,
// mutations, and live subscriptions share one request shape and are routed by
// the declared operation type.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/api/problem"
	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
	"github.com/gatherline/server/internal/domain/relations"
	"github.com/gatherline/server/internal/live"
	"github.com/gatherline/server/internal/metrics"
)

// OperationRequest is the wire shape accepted by POST /api/v1/operations.
// GET requests carry the same fields as query parameters so EventSource
// clients can attach to subscriptions.
type OperationRequest struct {
	Type      string          `json:"type" validate:"required,oneof=query mutation subscription"`
	Operation string          `json:"operation" validate:"required"`
	ID        string          `json:"id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Expand    []string        `json:"expand,omitempty"`
}

type OperationsHandler struct {
	accounts       *accounts.Service
	events         *events.Service
	locations      *locations.Service
	participations *participations.Service
	resolver       *relations.Resolver
	mux            *live.Multiplexer
	env            string
	logger         zerolog.Logger
	validate       *validator.Validate
}

func NewOperationsHandler(
	accountsSvc *accounts.Service,
	eventsSvc *events.Service,
	locationsSvc *locations.Service,
	participationsSvc *participations.Service,
	resolver *relations.Resolver,
	mux *live.Multiplexer,
	env string,
	logger zerolog.Logger,
) *OperationsHandler {
	return &OperationsHandler{
		accounts:       accountsSvc,
		events:         eventsSvc,
		locations:      locationsSvc,
		participations: participationsSvc,
		resolver:       resolver,
		mux:            mux,
		env:            env,
		logger:         logger.With().Str("component", "operations").Logger(),
		validate:       validator.New(),
	}
}

func (h *OperationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOperation(r)
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeBadRequest, "Malformed operation request", err, h.env)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationProblem(w, r, err, h.env)
		return
	}

	switch req.Type {
	case "query":
		h.observe(req, h.handleQuery(w, r, req))
	case "mutation":
		h.observe(req, h.handleMutation(w, r, req))
	case "subscription":
		h.observe(req, h.handleSubscription(w, r, req))
	}
}

func (h *OperationsHandler) observe(req OperationRequest, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.OperationsTotal.WithLabelValues(req.Type, req.Operation, status).Inc()
}

// decodeOperation reads the request from the POST body, or from query
// parameters on GET.
func decodeOperation(r *http.Request) (OperationRequest, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req := OperationRequest{
			Type:      q.Get("type"),
			Operation: q.Get("operation"),
			ID:        q.Get("id"),
		}
		if expand := q.Get("expand"); expand != "" {
			req.Expand = strings.Split(expand, ",")
		}
		return req, nil
	}

	var req OperationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return OperationRequest{}, fmt.Errorf("decode operation: %w", err)
	}
	return req, nil
}

// notFound reports whether err is any collection's miss sentinel.
func notFound(err error) bool {
	return errors.Is(err, accounts.ErrNotFound) ||
		errors.Is(err, events.ErrNotFound) ||
		errors.Is(err, locations.ErrNotFound) ||
		errors.Is(err, participations.ErrNotFound)
}

func (h *OperationsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) error {
	switch {
	case notFound(err):
		writeNotFoundProblem(w, r, err, h.env)
	case fieldErrors(err) != nil:
		writeValidationProblem(w, r, err, h.env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeInternalError, "Internal error", err, h.env)
	}
	return err
}

func (h *OperationsHandler) unsupported(w http.ResponseWriter, r *http.Request, req OperationRequest) error {
	err := fmt.Errorf("unsupported %s operation %q", req.Type, req.Operation)
	problem.Write(w, r, http.StatusBadRequest, problem.TypeUnsupported, "Unsupported operation", err, h.env)
	return err
}
