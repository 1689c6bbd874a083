package handler

import (
	"encoding/json"
	"net/http"

	"chms-be/pkg/apperrors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps an error to its HTTP status and resolved message. The
// fallback is the per-action default shown when the error carries no usable
// message of its own.
func respondError(w http.ResponseWriter, err error, fallback string) {
	respondJSON(w, apperrors.StatusCode(err), map[string]string{
		"error": apperrors.ResolveMessage(err, fallback),
	})
}
