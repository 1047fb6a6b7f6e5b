package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
	"github.com/rmejia/unified-portfolio-backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *services.ProjectStore
}

func newProjectHandler(store *services.ProjectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// ProjectCollection wraps a project list with its total
type ProjectCollection struct {
	Projects []models.UnifiedProject `json:"projects"`
	Total    int                     `json:"total"`
}

// ReorderRequest carries the new manual ordering
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// BulkUpdateRequest applies one partial to many projects
type BulkUpdateRequest struct {
	IDs     []string                 `json:"ids"`
	Partial models.UpdateProjectData `json:"partial"`
}

// BulkUpdateResponse reports the applied updates and the per-record failures
type BulkUpdateResponse struct {
	Updated  []models.UnifiedProject      `json:"updated"`
	Failures []services.BulkUpdateFailure `json:"failures,omitempty"`
}

// getAllProjects lists projects, filtered and sorted by query parameters
// @Summary List projects
// @Description Lists projects with optional filtering, sorting and search
// @Tags Projects
// @Produce json
// @Param status query string false "Filter by status"
// @Param featured query bool false "Filter by featured flag"
// @Param type query string false "Filter by project type"
// @Param template query string false "Filter by template id"
// @Param tags query string false "Comma-separated tags (any match)"
// @Param search query string false "Substring search"
// @Param orderBy query string false "title | createdAt | updatedAt | orderIndex"
// @Param direction query string false "asc | desc"
// @Success 200 {object} ProjectCollection
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := filtersFromQuery(r)

		projects, err := h.store.List(r.Context(), filters)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if orderBy := r.URL.Query().Get("orderBy"); orderBy != "" {
			direction := services.SortDirection(r.URL.Query().Get("direction"))
			if direction == "" {
				direction = services.SortAsc
			}
			projects = services.SortProjects(projects, services.SortField(orderBy), direction)
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getProjectStats summarizes the collection
// @Summary Project statistics
// @Tags Projects
// @Produce json
// @Success 200 {object} services.ProjectStats
// @Router /projects/stats [get]
func (h projectHandler) getProjectStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.List(r.Context(), nil)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, services.Stats(projects))
	}
}

// getProject retrieves one project by id
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.UnifiedProject
// @Failure 404 {object} ErrorResponse
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.store.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new draft project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.CreateProjectData true "Project data"
// @Success 201 {object} models.UnifiedProject
// @Failure 422 {object} ErrorResponse
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data models.CreateProjectData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.store.Create(r.Context(), data)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param partial body models.UpdateProjectData true "Partial update"
// @Success 200 {object} models.UnifiedProject
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		var partial models.UpdateProjectData
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.store.Update(r.Context(), projectID, partial)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by id
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		if err := h.store.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// duplicateProject deep-copies a project as a fresh draft
// @Summary Duplicate project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 201 {object} models.UnifiedProject
// @Failure 404 {object} ErrorResponse
// @Router /project/{projectID}/duplicate [post]
func (h projectHandler) duplicateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.store.Duplicate(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// publishProject publishes a project and fires the publish webhooks
// @Summary Publish project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.UnifiedProject
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /project/{projectID}/publish [post]
func (h projectHandler) publishProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.store.Publish(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// reorderProjects assigns manual ordering positions
// @Summary Reorder projects
// @Tags Projects
// @Accept json
// @Produce json
// @Param order body ReorderRequest true "Ids in display order"
// @Success 200 {object} map[string]string
// @Router /projects/reorder [post]
func (h projectHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.store.Reorder(r.Context(), req.IDs); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// bulkUpdateProjects applies one partial to many projects, best-effort
// @Summary Bulk update projects
// @Description Applies the partial to each listed project. Not atomic: a
// failing record is reported in failures while the rest still commit.
// @Tags Projects
// @Accept json
// @Produce json
// @Param batch body BulkUpdateRequest true "Ids and the partial to apply"
// @Success 200 {object} BulkUpdateResponse
// @Router /projects/bulk-update [post]
func (h projectHandler) bulkUpdateProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		updated, failures := h.store.BulkUpdate(r.Context(), req.IDs, req.Partial)
		h.responder.WriteJSON(w, BulkUpdateResponse{Updated: updated, Failures: failures})
	}
}

// filtersFromQuery builds the filter set from query parameters; nil when no
// filter parameter is present
func filtersFromQuery(r *http.Request) *services.ProjectFilters {
	q := r.URL.Query()

	filters := services.ProjectFilters{
		Status:     models.ProjectStatus(q.Get("status")),
		Type:       models.ProjectType(q.Get("type")),
		TemplateID: q.Get("template"),
		Search:     q.Get("search"),
	}
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true"
		filters.Featured = &featured
	}
	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filters.Tags = append(filters.Tags, trimmed)
			}
		}
	}

	if filters.Status == "" && filters.Type == "" && filters.TemplateID == "" &&
		filters.Search == "" && filters.Featured == nil && len(filters.Tags) == 0 {
		return nil
	}
	return &filters
}
