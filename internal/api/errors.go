package api

import (
	"encoding/json"
	"net/http"

	"github.com/arlenmoss/emberwatch/internal/weather"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a plain error response: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// writeDiagnostic writes a 400 response carrying the error message alongside
// the diagnostic details, so clients can see the raw upstream body.
func writeDiagnostic(w http.ResponseWriter, diag *weather.DiagnosticError) {
	body := map[string]any{"error": diag.Message}
	for k, v := range diag.Details {
		body[k] = v
	}
	writeJSON(w, http.StatusBadRequest, body)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}
