package handlers

import (
	"encoding/json"
	"net/http"

	"airport-feedback/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.GetLogger().Errorw("Error encoding response", "error", err)
	}
}

// serverError logs err and answers with the generic plain-text 500. Driver
// and parser messages never reach the client.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.GetLogger().Errorw(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	http.Error(w, "Server error", http.StatusInternalServerError)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
