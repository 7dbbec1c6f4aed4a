// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response helpers shared by every
// feature handler, including the single mapping from domain errors to HTTP
// status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/limits"
)

type errorBody struct {
	Error string `json:"error"`
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

// Error writes a JSON error body with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Error: msg})
}

// Decode reads the request body into dst, rejecting unknown fields and
// oversized bodies. Errors are safe to surface to the client.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limits.MaxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

// WriteErr maps a domain error onto the wire. Validation problems and known
// sentinels carry their own status; anything unrecognized is logged and
// reported as a plain 500 so internals never leak to the client.
func WriteErr(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrStoreTimeout), errors.Is(err, apperr.ErrStoreUnavailable):
		Error(w, http.StatusServiceUnavailable, "temporarily unavailable, retry shortly")
	default:
		if log == nil {
			log = zap.L()
		}
		log.Error("unhandled request error", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
