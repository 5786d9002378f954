package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lib/pq"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeStorageError devolve 500 com o código do Postgres quando disponível.
func writeStorageError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "STORAGE_ERROR", Message: err.Error()}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		resp.Code = string(pgErr.Code)
	}

	writeJSON(w, http.StatusInternalServerError, resp)
}
