// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/llm"
	"github.com/nexaqa/testforge/internal/scenario"
	"github.com/nexaqa/testforge/internal/store"
)

// Server exposes the extraction engine and scenario generator over HTTP.
type Server struct {
	router    chi.Router
	catalog   *store.Store
	provider  llm.Provider
	generator *scenario.Generator
	maxUpload int64
}

// Config controls request handling limits.
type Config struct {
	MaxUploadBytes int64
}

// DefaultConfig returns the standard server configuration.
func DefaultConfig() Config {
	return Config{MaxUploadBytes: 32 << 20}
}

func NewServer(catalog *store.Store, provider llm.Provider, cfg *Config) (*Server, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	configuration := DefaultConfig()
	if cfg != nil && cfg.MaxUploadBytes > 0 {
		configuration.MaxUploadBytes = cfg.MaxUploadBytes
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	common.Logger().Info("api: building server", "provider", providerName)
	srv := &Server{
		router:    chi.NewRouter(),
		catalog:   catalog,
		provider:  provider,
		generator: scenario.NewGenerator(provider),
		maxUpload: configuration.MaxUploadBytes,
	}
	srv.routes()
	return srv, nil
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/debug/vars", expvar.Handler())
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/extract/upload", s.handleExtractUpload)
		r.Post("/extract/text", s.handleExtractText)
		r.Post("/extract/jira", s.handleExtractJira)
		r.Post("/scenarios/generate", s.handleGenerateScenarios)
		r.Get("/bundles", s.handleListBundles)
		r.Get("/bundles/{bundleID}", s.handleGetBundle)
		r.Get("/logs", s.handleLogs)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		common.Logger().Warn("api: response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
