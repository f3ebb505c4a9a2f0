// Package handlers contains the HTTP handlers for the pharmacovigilance API
// along with the shared JSON response helpers they use.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/giygas/pharmacovigilance-api/logging"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RespondWithJSON writes payload as a JSON response with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error","message":"failed to encode response","code":500}`))
		return
	}

	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a standard error envelope with the given status.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, errorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}
