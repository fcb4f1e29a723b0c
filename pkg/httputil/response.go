package httputil

import (
	"encoding/json"
	"net/http"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
)

// WriteJSON writes a JSON response with the given status code.
// Any encoding errors are silently ignored (best-effort).
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err with its taxonomy code and HTTP status.
func WriteError(w http.ResponseWriter, err error, traceID string) {
	trackererrors.WriteHTTPError(w, err, traceID)
}

// WriteSuccessWithData writes a success response with additional data fields.
// The response format is: {"status": "ok", ...data}
func WriteSuccessWithData(w http.ResponseWriter, data map[string]any) {
	response := map[string]any{"status": "ok"}
	for k, v := range data {
		response[k] = v
	}
	WriteJSON(w, http.StatusOK, response)
}
