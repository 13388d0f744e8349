package handlers

import (
	"encoding/json"
	"net/http"

	"nba-props-go/logging"
	"nba-props-go/models"
)

// errorResponse is the JSON body returned for every error
type errorResponse struct {
	Error   models.ErrorKind `json:"error"`
	Message string           `json:"message"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

// respondError maps an error to its status code and JSON body
func respondError(w http.ResponseWriter, err error) {
	kind := models.Kind(err)
	if kind == models.KindInternal {
		logging.Errorf("Internal error: %v", err)
	}
	respondJSON(w, kind.HTTPStatus(), errorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}
