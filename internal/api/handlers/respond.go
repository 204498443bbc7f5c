package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gatherline/server/internal/api/problem"
)

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dataEnvelope{Data: data})
}

// fieldErrors flattens validator output into a field→message map for the
// problem body.
func fieldErrors(err error) map[string]interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
	}
	return out
}

func writeValidationProblem(w http.ResponseWriter, r *http.Request, err error, env string) {
	problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Validation failed", err, env,
		problem.WithErrors(fieldErrors(err)))
}

func writeNotFoundProblem(w http.ResponseWriter, r *http.Request, err error, env string) {
	problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Entity not found", err, env)
}
