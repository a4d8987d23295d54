package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response bodies.
type (
	listResponse struct {
		Contacts any    `json:"contacts"`
		Query    string `json:"q"`
	}

	dataResponse struct {
		Data any `json:"data"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}

	formErrorResponse struct {
		Errors  map[string][]string `json:"errors"`
		Data    any                 `json:"data"`
		Message string              `json:"message"`
	}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
