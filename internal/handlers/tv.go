package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/pkg/response"
)

// TVHandler serves the TV catalog endpoints.
type TVHandler struct {
	shows *services.TVService
}

// NewTVHandler constructs a TV handler.
func NewTVHandler(shows *services.TVService) *TVHandler {
	return &TVHandler{shows: shows}
}

// Trending handles GET /tv/trending.
func (h *TVHandler) Trending(c *gin.Context) {
	payload, err := h.shows.Trending(requestContext(c), c.Query("window"), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Popular handles GET /tv/popular.
func (h *TVHandler) Popular(c *gin.Context) {
	payload, err := h.shows.Popular(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// TopRated handles GET /tv/top-rated.
func (h *TVHandler) TopRated(c *gin.Context) {
	payload, err := h.shows.TopRated(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Details handles GET /tv/:id.
func (h *TVHandler) Details(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.shows.Details(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Credits handles GET /tv/:id/credits.
func (h *TVHandler) Credits(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.shows.Credits(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Videos handles GET /tv/:id/videos.
func (h *TVHandler) Videos(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.shows.Videos(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Similar handles GET /tv/:id/similar.
func (h *TVHandler) Similar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.shows.Similar(requestContext(c), id, parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Recommendations handles GET /tv/:id/recommendations.
func (h *TVHandler) Recommendations(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.shows.Recommendations(requestContext(c), id, parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}
