package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/pkg/response"
)

// MovieHandler serves the movie catalog endpoints.
type MovieHandler struct {
	movies *services.MovieService
}

// NewMovieHandler constructs a movie handler.
func NewMovieHandler(movies *services.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// Trending handles GET /movies/trending.
func (h *MovieHandler) Trending(c *gin.Context) {
	payload, err := h.movies.Trending(requestContext(c), c.Query("window"), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Popular handles GET /movies/popular.
func (h *MovieHandler) Popular(c *gin.Context) {
	payload, err := h.movies.Popular(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// TopRated handles GET /movies/top-rated.
func (h *MovieHandler) TopRated(c *gin.Context) {
	payload, err := h.movies.TopRated(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Upcoming handles GET /movies/upcoming.
func (h *MovieHandler) Upcoming(c *gin.Context) {
	payload, err := h.movies.Upcoming(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// NowPlaying handles GET /movies/now-playing.
func (h *MovieHandler) NowPlaying(c *gin.Context) {
	payload, err := h.movies.NowPlaying(requestContext(c), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Details handles GET /movies/:id.
func (h *MovieHandler) Details(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.movies.Details(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Credits handles GET /movies/:id/credits.
func (h *MovieHandler) Credits(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.movies.Credits(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Videos handles GET /movies/:id/videos.
func (h *MovieHandler) Videos(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.movies.Videos(requestContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Similar handles GET /movies/:id/similar.
func (h *MovieHandler) Similar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.movies.Similar(requestContext(c), id, parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Recommendations handles GET /movies/:id/recommendations.
func (h *MovieHandler) Recommendations(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.movies.Recommendations(requestContext(c), id, parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}
