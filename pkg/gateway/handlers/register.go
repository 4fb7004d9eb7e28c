package handlers

import (
	"net/http"

	"github.com/collegegate/collegegate/pkg/store"
)

// RegisterHandler creates or updates an account.
//
//	POST /v1/register
type RegisterHandler struct {
	Users store.UserRepository
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Mobile         string `json:"mobile"`
	WhatsApp       string `json:"whatsapp"`
	Specialization string `json:"specialization"`
	StudentID      string `json:"studentId"`
}

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := &store.User{
		Name:           req.Name,
		Email:          req.Email,
		Role:           store.Role(req.Role),
		Mobile:         req.Mobile,
		WhatsApp:       req.WhatsApp,
		Specialization: req.Specialization,
		StudentID:      req.StudentID,
	}
	if err := h.Users.Save(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
