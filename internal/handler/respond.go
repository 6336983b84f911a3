package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"alloydb-shop/api/internal/logger"
)

const msgInternal = "Internal Server Error"

type errorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeInternal logs err and answers with a generic 500; causes never reach
// the client.
func writeInternal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.FromContext(r.Context()).Error(msg, zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, msgInternal)
}
