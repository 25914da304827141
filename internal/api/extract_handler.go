// File path: internal/api/extract_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/extract"
)

type extractResponse struct {
	BundleID string          `json:"bundle_id"`
	Bundle   *extract.Bundle `json:"bundle"`
}

type extractTextRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleExtractUpload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		logger.Warn("api: upload form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file field is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	logger.Info("api: extraction upload", "filename", header.Filename, "bytes", len(data))

	bundle, err := extract.ProcessBytes(ctx, header.Filename, data)
	if err != nil {
		status := http.StatusInternalServerError
		var unsupported *extract.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			status = http.StatusBadRequest
		}
		logger.Error("api: extraction failed", "filename", header.Filename, "error", err)
		writeError(w, status, err)
		return
	}
	s.respondWithBundle(w, r, header.Filename, bundle)
}

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req extractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: text decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	bundle := extract.ProcessRawInput(req.Text)
	s.respondWithBundle(w, r, "raw-text", bundle)
}

func (s *Server) handleExtractJira(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read payload: %w", err))
		return
	}
	bundle, err := extract.ProcessJiraExport(payload)
	if err != nil {
		logger.Warn("api: jira extraction failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.respondWithBundle(w, r, "jira-export", bundle)
}

func (s *Server) respondWithBundle(w http.ResponseWriter, r *http.Request, sourceName string, bundle *extract.Bundle) {
	logger := common.Logger()
	id, err := s.catalog.SaveBundle(r.Context(), sourceName, bundle)
	if err != nil {
		logger.Error("api: bundle persist failed", "source", sourceName, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: extraction complete", "source", sourceName, "bundle", id,
		"requirements", len(bundle.Requirements), "stories", len(bundle.UserStories)+len(bundle.Stories))
	writeJSON(w, http.StatusOK, extractResponse{BundleID: id, Bundle: bundle})
}
