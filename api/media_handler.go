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

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *services.ProjectStore
	media     services.MediaService
}

func newMediaHandler(store *services.ProjectStore, media services.MediaService) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()
	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		media:     media,
	}
}

// MediaUsageResponse lists which projects (and sections) reference an asset.
// An empty usage list means the asset can be removed without breaking any
// published project.
type MediaUsageResponse struct {
	MediaID string                   `json:"media_id"`
	Asset   *models.MediaAsset       `json:"asset,omitempty"`
	Usage   []models.MediaUsageEntry `json:"usage"`
	Total   int                      `json:"total"`
}

// getMediaUsage returns the back-references for one media asset
// @Summary Media usage
// @Description Lists every project and section referencing the asset, for
// assessing impact before a destructive media delete
// @Tags Media
// @Produce json
// @Param mediaID path string true "Media asset ID"
// @Success 200 {object} MediaUsageResponse
// @Router /media/{mediaID}/usage [get]
func (h mediaHandler) getMediaUsage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID := chi.URLParam(r, "mediaID")
		if mediaID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing mediaID"))
			return
		}

		usage := h.store.GetUsage(mediaID)
		if usage == nil {
			usage = []models.MediaUsageEntry{}
		}

		response := MediaUsageResponse{MediaID: mediaID, Usage: usage, Total: len(usage)}

		// asset resolution is best-effort; the usage list is the point
		if h.media != nil {
			if asset, err := h.media.Resolve(r.Context(), mediaID); err == nil {
				response.Asset = &asset
			}
		}

		h.responder.WriteJSON(w, response)
	}
}
