package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/notegen/internal/config"
	"github.com/dgallion1/notegen/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for notegen.
type Server struct {
	router chi.Router
	gen    *pipeline.Generator
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(gen *pipeline.Generator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		gen: gen,
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleGenerate)
		r.Get("/api/documents", s.handleListDocuments)
		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/docx", s.handleDownloadDOCX)
			r.Get("/preview", s.handlePreview)
			r.Post("/pdf", s.handleConvertPDF)
			r.Get("/pdf", s.handleDownloadPDF)
		})

		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Post("/api/classify", s.handleClassify)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
