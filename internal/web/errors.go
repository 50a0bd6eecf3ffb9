package web

// errors.go provides unified error response handling for the web layer.
// Errors are logged with full technical detail server-side and returned to
// clients as JSON with a stable machine-readable code:
//
//	SCHEMA    - no member-ID column resolvable in the source
//	TRANSPORT - the AppSheet API failed after retries
//	FILE      - unreadable or oversized upload
//	BUSY      - all load slots occupied
//	INTERNAL  - anything else

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kaustavpaul/membership-card-ctba/internal/appsheet"
	"github.com/kaustavpaul/membership-card-ctba/internal/logging"
	"github.com/kaustavpaul/membership-card-ctba/internal/roster"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError classifies err, logs it with request context, and writes the
// JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	var schemaErr *roster.SchemaError
	var apiErr *appsheet.APIError
	switch {
	case errors.As(err, &schemaErr):
		status = http.StatusUnprocessableEntity
		code = "SCHEMA"
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
		code = "TRANSPORT"
	case errors.Is(err, roster.ErrUnsupportedFormat):
		status = http.StatusBadRequest
		code = "FILE"
	}

	s.respondErrorCode(w, r, err, status, code)
}

func (s *Server) respondErrorCode(w http.ResponseWriter, r *http.Request, err error, status int, code string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", code,
		"error", err.Error(),
	)

	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
