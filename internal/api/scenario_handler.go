// File path: internal/api/scenario_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/scenario"
	"github.com/nexaqa/testforge/internal/store"
)

type generateScenariosRequest struct {
	BundleID string `json:"bundle_id"`
	Strict   bool   `json:"strict,omitempty"`
}

type generateScenariosResponse struct {
	BundleID  string            `json:"bundle_id"`
	Scenarios []scenario.Record `json:"scenarios"`
}

func (s *Server) handleGenerateScenarios(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req generateScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.BundleID = strings.TrimSpace(req.BundleID)
	if req.BundleID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bundle_id is required"))
		return
	}
	record, err := s.catalog.GetBundle(ctx, req.BundleID)
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
	records, err := s.generator.Generate(ctx, bundle, req.Strict)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, scenario.ErrNoScenarios) {
			status = http.StatusUnprocessableEntity
		}
		logger.Error("api: scenario generation failed", "bundle", req.BundleID, "error", err)
		writeError(w, status, err)
		return
	}
	if err := s.catalog.SaveScenarios(ctx, req.BundleID, records); err != nil {
		logger.Error("api: scenario persist failed", "bundle", req.BundleID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: scenarios generated", "bundle", req.BundleID, "count", len(records))
	writeJSON(w, http.StatusOK, generateScenariosResponse{BundleID: req.BundleID, Scenarios: records})
}
