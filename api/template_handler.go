package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rmejia/unified-portfolio-backend/errs"
	"github.com/rmejia/unified-portfolio-backend/models"
	"github.com/rmejia/unified-portfolio-backend/services"
)

type templateHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newTemplateHandler() templateHandler {
	logger := log.With().Str("handlerName", "templateHandler").Logger()
	return templateHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

// TemplateCollection wraps the catalog listing
type TemplateCollection struct {
	Templates []models.ProjectTemplate `json:"templates"`
	Total     int                      `json:"total"`
}

// getAllTemplates lists the template catalog
// @Summary List templates
// @Tags Templates
// @Produce json
// @Success 200 {object} TemplateCollection
// @Router /templates [get]
func (h templateHandler) getAllTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates := services.Templates()
		h.responder.WriteJSON(w, TemplateCollection{Templates: templates, Total: len(templates)})
	}
}

// getTemplate retrieves a single catalog entry
// @Summary Get template
// @Tags Templates
// @Produce json
// @Param templateID path string true "Template ID"
// @Success 200 {object} models.ProjectTemplate
// @Failure 404 {object} ErrorResponse
// @Router /template/{templateID} [get]
func (h templateHandler) getTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateID := chi.URLParam(r, "templateID")
		if templateID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing templateID"))
			return
		}

		tmpl, err := services.TemplateByID(templateID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, tmpl)
	}
}
