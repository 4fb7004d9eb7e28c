package handlers

import (
	"context"
	"net/http"

	"github.com/collegegate/collegegate/pkg/core/counselor"
)

// ResearchService answers grounded college research questions.
// *counselor.Client satisfies it.
type ResearchService interface {
	SearchCollegeInfo(ctx context.Context, query string) (*counselor.SearchResult, error)
}

// ResearchHandler runs a grounded research query.
//
//	POST /v1/research
type ResearchHandler struct {
	Research ResearchService
}

type researchRequest struct {
	Query string `json:"query"`
}

func (h ResearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req researchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.Research.SearchCollegeInfo(r.Context(), req.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
