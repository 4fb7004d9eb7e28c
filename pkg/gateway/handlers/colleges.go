package handlers

import (
	"net/http"
	"strings"

	"github.com/collegegate/collegegate/pkg/core"
	"github.com/collegegate/collegegate/pkg/core/catalog"
)

// CollegesHandler lists and filters the college directory.
//
//	GET /v1/colleges?q=...&country=...&tag=...&exam=...&id=...
type CollegesHandler struct {
	Catalog *catalog.Catalog
}

func (h CollegesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	params := r.URL.Query()

	if id := strings.TrimSpace(params.Get("id")); id != "" {
		col, err := h.Catalog.ByID(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, col)
		return
	}

	colleges := h.Catalog.Filter(catalog.Query{
		Text:    strings.TrimSpace(params.Get("q")),
		Country: strings.TrimSpace(params.Get("country")),
		Tag:     strings.TrimSpace(params.Get("tag")),
		Exam:    strings.TrimSpace(params.Get("exam")),
	})
	if colleges == nil {
		colleges = []catalog.College{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"colleges": colleges})
}

// CompareHandler resolves a set of colleges for side-by-side view.
//
//	GET /v1/colleges/compare?ids=3,30
type CompareHandler struct {
	Catalog *catalog.Catalog
}

func (h CompareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeError(w, r, core.NewInvalidRequestErrorWithParam("ids is required", "ids"))
		return
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	colleges, err := h.Catalog.Compare(ids)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"colleges": colleges})
}
