// Package web holds the HTTP helpers and middleware shared by the catalog transports.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// InternalErrorMessage is the only message a client ever sees for an unexpected failure.
const InternalErrorMessage = "Internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
}

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + InternalErrorMessage + `"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, ErrorResponse{Error: message})
}

// RespondValidation answers 400 with the offending fields keyed by their JSON names.
func RespondValidation(w http.ResponseWriter, logger *slog.Logger, message string, fields map[string]string) {
	RespondJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: message, ValidationErrors: fields})
}

// NotFound is the handler for routes that match nothing.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		RespondError(w, logger, http.StatusNotFound, "Not found")
	}
}

// MethodNotAllowed is the handler for a known route called with the wrong method.
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		RespondError(w, logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
