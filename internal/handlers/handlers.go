package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"deploy-dashboard/internal/config"
	"deploy-dashboard/internal/database"
	"deploy-dashboard/internal/i18n"
	"deploy-dashboard/internal/logger"
	"deploy-dashboard/internal/models"
	"deploy-dashboard/internal/widget"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	db     *sql.DB
	config *config.Config
	links  widget.LinkBuilder
	now    func() time.Time
	theme  widget.Theme
	logger *logrus.Entry
}

func NewHandler(db *sql.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		config: cfg,
		links:  widget.PrefixLinks(cfg.LinkBaseURL),
		now:    time.Now,
		theme:  widget.DefaultTheme,
		logger: logger.WithModule("handlers"),
	}
}

// SetClock replaces the clock relative times are measured against.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// DeploysHTML renders the deploys panel for a project.
func (h *Handler) DeploysHTML(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := widget.WriteHTML(&buf, view, h.theme); err != nil {
		h.logger.WithError(err).Error("Failed to render deploys panel")
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// DeploysJSON returns the same panel as a structured view.
func (h *Handler) DeploysJSON(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) (widget.View, bool) {
	vars := mux.Vars(r)
	orgID, projectID := vars["orgId"], vars["projectId"]

	project, err := database.GetProject(h.db, projectID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// A project nobody has deployed yet still gets the empty state.
		project = models.Project{Slug: projectID}
	case err != nil:
		h.logger.WithError(err).WithField("project", projectID).Error("Failed to load project")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return widget.View{}, false
	}

	translator := i18n.ForRequest(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), h.config.DefaultLocale)
	presenter := &widget.Presenter{
		BuildLink:       h.links,
		RelativeFromNow: widget.HumanizeSince(h.now),
		Translate:       translator.Translate,
	}

	return presenter.Deploys(project, models.RouteParams{OrgID: orgID}), true
}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	project, err := database.GetProject(h.db, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("project", projectID).Error("Failed to load project")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// RecordDeploy stores a finished deploy reported for a project.
func (h *Handler) RecordDeploy(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req models.DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Version == "" {
		http.Error(w, "Version is required", http.StatusBadRequest)
		return
	}

	deploy := models.Deploy{
		Version:      req.Version,
		Environment:  req.Environment,
		DateFinished: req.DateFinished,
	}
	if err := database.RecordDeploy(h.db, projectID, deploy); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"project": projectID,
			"version": req.Version,
		}).Error("Failed to record deploy")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"project":     projectID,
		"version":     req.Version,
		"environment": req.Environment,
	}).Info("Deploy recorded")

	writeJSON(w, http.StatusCreated, models.DeployResponse{
		Status:    "recorded",
		ProjectID: projectID,
		Version:   req.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
