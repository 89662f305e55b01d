package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/pkg/response"
)

// GenreHandler serves the genre list endpoints.
type GenreHandler struct {
	genres *services.GenreService
}

// NewGenreHandler constructs a genre handler.
func NewGenreHandler(genres *services.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

// Movies handles GET /genres/movies.
func (h *GenreHandler) Movies(c *gin.Context) {
	payload, err := h.genres.MovieGenres(requestContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// TV handles GET /genres/tv.
func (h *GenreHandler) TV(c *gin.Context) {
	payload, err := h.genres.TVGenres(requestContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}
