package controller

import (
	"encoding/json"
	"net/http"

	"stitchquote/errs"
	"stitchquote/logging"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("failed to encode response: %v", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// writeError maps a typed error to its HTTP status and writes it.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	errType := errs.TypeInternal

	switch {
	case errs.IsType(err, errs.TypeInput):
		status = http.StatusBadRequest
		errType = errs.TypeInput
	case errs.IsType(err, errs.TypeNotFound):
		status = http.StatusNotFound
		errType = errs.TypeNotFound
	case errs.IsType(err, errs.TypeConfig):
		status = http.StatusUnprocessableEntity
		errType = errs.TypeConfig
	case errs.IsType(err, errs.TypePersistence):
		status = http.StatusInternalServerError
		errType = errs.TypePersistence
	}

	if status >= http.StatusInternalServerError {
		logging.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Type: string(errType)})
}
