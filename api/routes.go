package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/stats", handlers.projectHandler.getProjectStats())
		r.Post("/projects/reorder", handlers.projectHandler.reorderProjects())
		r.Post("/projects/bulk-update", handlers.projectHandler.bulkUpdateProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/project/{projectID}/duplicate", handlers.projectHandler.duplicateProject())
		r.Post("/project/{projectID}/publish", handlers.projectHandler.publishProject())

		// Template catalog endpoints
		r.Get("/templates", handlers.templateHandler.getAllTemplates())
		r.Get("/template/{templateID}", handlers.templateHandler.getTemplate())

		// Media endpoints
		r.Get("/media/{mediaID}/usage", handlers.mediaHandler.getMediaUsage())
	})
}
