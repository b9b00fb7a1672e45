package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"servifix-backend/internal/store"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
	Error   *apiError `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := apiResponse{Status: "ok", Data: payload}
	if status >= 400 {
		resp.Status = "error"
		resp.Error = &apiError{Code: status, Status: http.StatusText(status)}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Status:  "error",
		Message: message,
		Error:   &apiError{Code: status, Status: http.StatusText(status)},
	})
}

// writeStoreError maps the store's error classes onto HTTP statuses:
// validation failures block with 422, missing entities 404, the rest 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
