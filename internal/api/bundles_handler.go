// File path: internal/api/bundles_handler.go
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/nexaqa/testforge/internal/extract"
	"github.com/nexaqa/testforge/internal/scenario"
	"github.com/nexaqa/testforge/internal/store"
)

type bundleDetailResponse struct {
	store.BundleRecord
	Bundle    *extract.Bundle   `json:"bundle"`
	Scenarios []scenario.Record `json:"scenarios,omitempty"`
}

func (s *Server) handleListBundles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	records, err := s.catalog.ListBundles(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bundles": records})
}

func (s *Server) handleGetBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bundleID")
	record, err := s.catalog.GetBundle(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	bundle, err := record.Bundle()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	scenarios, err := s.catalog.ListScenarios(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, bundleDetailResponse{BundleRecord: *record, Bundle: bundle, Scenarios: scenarios})
}
