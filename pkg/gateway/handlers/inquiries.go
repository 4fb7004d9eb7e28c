package handlers

import (
	"net/http"
	"strings"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/store"
)

// InquiriesHandler manages the counselor desk queue.
//
//	POST  /v1/inquiries           submit a question
//	GET   /v1/inquiries           list the queue
//	PATCH /v1/inquiries?id=...    update status
type InquiriesHandler struct {
	Inquiries store.InquiryRepository
}

type inquiryRequest struct {
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Course      string `json:"course"`
	Query       string `json:"query"`
}

type inquiryStatusRequest struct {
	Status string `json:"status"`
}

func (h InquiriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPatch:
		h.updateStatus(w, r)
	default:
		requireMethod(w, r, http.MethodPost, http.MethodGet, http.MethodPatch)
	}
}

func (h InquiriesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	inquiry := &store.Inquiry{
		StudentName: req.StudentName,
		StudentID:   req.StudentID,
		Course:      req.Course,
		Query:       req.Query,
	}
	if err := h.Inquiries.Save(r.Context(), inquiry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

func (h InquiriesHandler) list(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Inquiries.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if inquiries == nil {
		inquiries = []store.Inquiry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": inquiries})
}

func (h InquiriesHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, r, core.NewInvalidRequestErrorWithParam("id is required", "id"))
		return
	}
	var req inquiryStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	status := store.InquiryStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status != store.InquiryPending && status != store.InquiryAnswered {
		writeError(w, r, core.NewInvalidRequestErrorWithParam("status must be PENDING or ANSWERED", "status"))
		return
	}
	if err := h.Inquiries.SetStatus(r.Context(), id, status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
}
