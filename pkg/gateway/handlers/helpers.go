package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/gateway/apierror"
	"github.com/collegegate/collegegate/pkg/gateway/mw"
)

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID, _ := mw.RequestIDFrom(r.Context())
	apierror.Write(w, reqID, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON strictly decodes the request body into v; unknown fields
// and trailing content are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return core.NewInvalidRequestError("invalid JSON body: " + err.Error())
	}
	if dec.More() {
		return core.NewInvalidRequestError("unexpected trailing content in body")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}

func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", allowHeader(methods))
	reqID, _ := mw.RequestIDFrom(r.Context())
	apierror.WriteStatus(w, reqID, http.StatusMethodNotAllowed,
		core.NewInvalidRequestError("method not allowed: "+r.Method))
	return false
}

func allowHeader(methods []string) string {
	out := ""
	for i, m := range methods {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
