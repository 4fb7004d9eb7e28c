package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/store"
)

// AdminUsersCSVHandler exports the user list for the admin dashboard.
// The route is disabled when no token is configured.
//
//	GET /v1/admin/users.csv
type AdminUsersCSVHandler struct {
	Users store.UserRepository
	Token string
}

func (h AdminUsersCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if h.Token == "" {
		writeError(w, r, core.NewNotFoundError("admin export is not enabled"))
		return
	}
	if !h.authorized(r) {
		writeError(w, r, core.NewPermissionDeniedError("admin token required"))
		return
	}
	users, err := h.Users.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	if err := store.WriteUsersCSV(w, users); err != nil {
		// Headers are already out; nothing useful to send at this point.
		return
	}
}

func (h AdminUsersCSVHandler) authorized(r *http.Request) bool {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.Token)) == 1
}

// AdminBanHandler toggles an account ban.
//
//	POST /v1/admin/ban
type AdminBanHandler struct {
	Users store.UserRepository
	Token string
}

type banRequest struct {
	ID     string `json:"id"`
	Banned bool   `json:"banned"`
}

func (h AdminBanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if h.Token == "" {
		writeError(w, r, core.NewNotFoundError("admin actions are not enabled"))
		return
	}
	if !(AdminUsersCSVHandler{Token: h.Token}).authorized(r) {
		writeError(w, r, core.NewPermissionDeniedError("admin token required"))
		return
	}
	var req banRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, r, core.NewInvalidRequestErrorWithParam("id is required", "id"))
		return
	}
	if err := h.Users.SetBanned(r.Context(), req.ID, req.Banned); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "banned": req.Banned})
}
