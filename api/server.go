// Package api provides HTTP API capabilities for the saham analyzer.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/aqlanhadi/saham/analyzer"
	"github.com/aqlanhadi/saham/analyzer/common"
	"github.com/aqlanhadi/saham/workbook"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API endpoints
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAnalyze accepts a share awaiting report upload and responds with
// the analysis as JSON, or with the generated message workbook when
// format=xlsx is requested.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Read file into memory
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("%sError reading file bytes: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	grid, err := workbook.ReadGridFromReader(bytes.NewReader(fileBytes))
	if err != nil {
		log.Printf("%sError reading workbook: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read workbook: "+err.Error(), http.StatusBadRequest)
		return
	}

	analysis, err := analyzer.Analyze(grid, handler.Filename)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoHeaderRow) {
			log.Printf("%sMalformed report: %v", s.config.LogPrefix, err)
			http.Error(w, "Malformed report: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("%sError analyzing report: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not analyze report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	opts := s.parseAnalyzeOptions(r)

	if opts.Format == "xlsx" {
		s.writeWorkbookResponse(w, analysis)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyzer.CreateFinalOutput(analysis, opts.SummaryOnly))
}

// AnalyzeOptions holds the options for an analyze request
type AnalyzeOptions struct {
	SummaryOnly bool
	Format      string
}

// parseAnalyzeOptions extracts options from the HTTP request
func (s *Server) parseAnalyzeOptions(r *http.Request) AnalyzeOptions {
	return AnalyzeOptions{
		SummaryOnly: r.FormValue("summary_only") == "true" || r.URL.Query().Get("summary_only") == "true",
		Format:      coalesce(r.FormValue("format"), r.URL.Query().Get("format")),
	}
}

// writeWorkbookResponse streams the three-sheet message workbook as a
// download with the timestamped report filename.
func (s *Server) writeWorkbookResponse(w http.ResponseWriter, analysis common.Analysis) {
	report, err := workbook.BuildReport(analysis)
	if err != nil {
		log.Printf("%sError building report workbook: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not build report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer report.Close()

	filename := workbook.ReportFileName("", time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := report.WriteTo(w); err != nil {
		log.Printf("%sError writing workbook response: %v", s.config.LogPrefix, err)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
