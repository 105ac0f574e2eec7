package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/strategyconfig"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var verr strategyconfig.ValidationError
	switch {
	case errors.Is(err, contracts.ErrInvalidStrategySelector),
		errors.Is(err, contracts.ErrInvalidDateRange),
		errors.Is(err, contracts.ErrInvalidCash),
		errors.Is(err, contracts.ErrInvalidWindow),
		errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrNoDataFound):
		return http.StatusNotFound
	case errors.Is(err, contracts.ErrDegeneratePrice):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// optionalPtr maps None to JSON null
func optionalPtr(v optional.Option[float64]) *float64 {
	if v.IsNone() {
		return nil
	}
	f := v.Unwrap()
	return &f
}
