package server

import (
	"database/sql"
	"net/http"
	"time"

	"deploy-dashboard/internal/config"
	"deploy-dashboard/internal/handlers"
	"deploy-dashboard/internal/logger"

	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

type Server struct {
	config  *config.Config
	handler *handlers.Handler
	router  *mux.Router
	nrApp   *newrelic.Application
	logger  *logrus.Entry
}

// NewServer wires the routes. nrApp may be nil when monitoring is off.
func NewServer(cfg *config.Config, db *sql.DB, nrApp *newrelic.Application) *Server {
	s := &Server{
		config:  cfg,
		handler: handlers.NewHandler(db, cfg),
		router:  mux.NewRouter(),
		nrApp:   nrApp,
		logger:  logger.WithModule("server"),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc(newrelic.WrapHandleFunc(s.nrApp, "/health", s.handler.Health)).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc(newrelic.WrapHandleFunc(s.nrApp, "/projects/{projectId}", s.handler.Project)).Methods("GET")

	ingest := api.PathPrefix("").Subrouter()
	ingest.Use(s.authMiddleware)
	ingest.HandleFunc(newrelic.WrapHandleFunc(s.nrApp, "/projects/{projectId}/deploys", s.handler.RecordDeploy)).Methods("POST")

	s.router.HandleFunc(newrelic.WrapHandleFunc(s.nrApp, "/{orgId}/{projectId}/deploys.json", s.handler.DeploysJSON)).Methods("GET")
	s.router.HandleFunc(newrelic.WrapHandleFunc(s.nrApp, "/{orgId}/{projectId}/deploys", s.handler.DeploysHTML)).Methods("GET")
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Secret-Key") != s.config.IngestSecret {
			s.logger.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"method": r.Method,
				"ip":     r.RemoteAddr,
			}).Warn("Invalid secret key provided")
			http.Error(w, "Invalid secret key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	})
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.Port).Info("Server starting")
	return http.ListenAndServe(":"+s.config.Port, s.router)
}
