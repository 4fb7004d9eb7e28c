// Package apierror maps internal errors onto the gateway's JSON error
// envelope and HTTP status codes.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/collegegate/collegegate/pkg/core"
)

type Envelope struct {
	Error     *core.Error `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// StatusFor maps an error type to an HTTP status code.
func StatusFor(t core.ErrorType) int {
	switch t {
	case core.ErrInvalidRequest, core.ErrUnsupportedMedia:
		return http.StatusBadRequest
	case core.ErrAuthentication:
		return http.StatusUnauthorized
	case core.ErrPermissionDenied:
		return http.StatusForbidden
	case core.ErrNotFound:
		return http.StatusNotFound
	case core.ErrNotConnected:
		return http.StatusConflict
	case core.ErrTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write sends err as a JSON envelope. Non-core errors become opaque
// API errors so internals never leak to clients.
func Write(w http.ResponseWriter, requestID string, err error) {
	var coreErr *core.Error
	if !errors.As(err, &coreErr) {
		coreErr = core.NewAPIError("internal error")
	}
	WriteStatus(w, requestID, StatusFor(coreErr.Type), coreErr)
}

// WriteStatus sends err as a JSON envelope with an explicit status.
func WriteStatus(w http.ResponseWriter, requestID string, status int, err *core.Error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: err, RequestID: requestID})
}
