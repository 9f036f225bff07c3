package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/device-registry/internal/domain"
)

// ResultEnvelope is the response wrapper for every non-list endpoint.
type ResultEnvelope struct {
	Result string `json:"result"`
	// DeviceAPIKey is only set when the server generated the key on create.
	DeviceAPIKey string `json:"device_api_key,omitempty"`
}

const msgConflict = "Error: This device name is already taken."

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ResultEnvelope{Result: msg})
}

// httpError maps domain sentinel errors to HTTP status codes.
// Anything unrecognised is a store failure and surfaces as 500.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, msgConflict)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeFields reads a flat JSON object body.
func decodeFields(r *http.Request) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return fields, nil
}

// deviceNameParam reads device_name, falling back to the legacy "device" key.
func deviceNameParam(r *http.Request) string {
	q := r.URL.Query()
	if name := q.Get("device_name"); name != "" {
		return name
	}
	return q.Get("device")
}
