package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lfcamargo/crm-leads/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the usecase error taxonomy onto HTTP statuses. Technical
// failures stay opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	if usecase.IsDomainError(err) {
		code := usecase.DomainErrorCode(err)
		status := http.StatusUnprocessableEntity
		switch code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeDuplicateEmail, usecase.CodeConcurrentModification:
			status = http.StatusConflict
		case usecase.CodeValidation:
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}
