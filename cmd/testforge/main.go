// File path: cmd/testforge/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nexaqa/testforge/internal/api"
	"github.com/nexaqa/testforge/internal/common"
	"github.com/nexaqa/testforge/internal/llm"
	"github.com/nexaqa/testforge/internal/store"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("testforge: .env file not loaded", "error", err)
	} else {
		logger.Info("testforge: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite catalog database")
	maxUpload := flag.Int64("max-upload", 0, "maximum upload size in bytes (0 uses the default)")
	flag.Parse()

	logger.Info("testforge: startup initiated", "addr", *addr, "catalog", *catalogPath)

	catalog, err := store.Open(*catalogPath)
	if err != nil {
		logger.Error("testforge: catalog open failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer catalog.Close()

	provider := llm.NewProvider()
	logger.Info("testforge: llm provider ready", "provider", provider.Name())

	cfg := api.DefaultConfig()
	if *maxUpload > 0 {
		cfg.MaxUploadBytes = *maxUpload
	}
	server, err := api.NewServer(catalog, provider, &cfg)
	if err != nil {
		logger.Error("testforge: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("testforge: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("testforge: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("testforge: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultCatalogPath() string {
	return filepath.Join("data", "catalog.db")
}
