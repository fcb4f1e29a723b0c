package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 64 << 10

// DecodeJSONStrict decodes the request body as JSON with strict validation.
// Unknown fields, trailing data and oversized bodies are reported as validation errors.
func DecodeJSONStrict(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return trackererrors.NewValidationError("body", "request body is required", nil)
		case errors.As(err, &maxErr):
			return trackererrors.NewValidationError("body", fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), nil)
		default:
			return trackererrors.NewValidationError("body", "invalid JSON: "+err.Error(), nil)
		}
	}
	if dec.More() {
		return trackererrors.NewValidationError("body", "unexpected data after JSON object", nil)
	}
	return nil
}

// QueryParam returns the trimmed value of a query parameter, or defaultValue if not present.
func QueryParam(r *http.Request, key, defaultValue string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return defaultValue
}

// ParseID parses a decimal asset id taken from a path segment.
func ParseID(field, raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, trackererrors.NewValidationError(field, "must be a non-negative integer", raw)
	}
	return id, nil
}
