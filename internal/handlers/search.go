package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/pkg/response"
)

// SearchHandler serves search and discovery. These endpoints always go to
// the upstream; nothing is cached.
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler constructs a search handler.
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Movies handles GET /search/movies?q=...
func (h *SearchHandler) Movies(c *gin.Context) {
	payload, err := h.search.SearchMovies(requestContext(c), c.Query("q"), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// TV handles GET /search/tv?q=...
func (h *SearchHandler) TV(c *gin.Context) {
	payload, err := h.search.SearchTV(requestContext(c), c.Query("q"), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Multi handles GET /search/multi?q=...
func (h *SearchHandler) Multi(c *gin.Context) {
	payload, err := h.search.SearchMulti(requestContext(c), c.Query("q"), parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}

// Discover handles GET /discover/:kind with upstream filter passthrough.
func (h *SearchHandler) Discover(c *gin.Context) {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	payload, err := h.search.Discover(requestContext(c), c.Param("kind"), filters, parseIntQuery(c, "page", 1))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, payload)
}
