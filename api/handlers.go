package api

import (
	"github.com/rmejia/unified-portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	templateHandler templateHandler
	mediaHandler    mediaHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store *services.ProjectStore, media services.MediaService) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(store),
		templateHandler: newTemplateHandler(),
		mediaHandler:    newMediaHandler(store, media),
	}
}
