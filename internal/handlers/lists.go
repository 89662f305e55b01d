package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	appErrors "github.com/cinebase/cinebase/pkg/errors"
	"github.com/cinebase/cinebase/pkg/response"
)

// ListHandler serves the per-user watchlist, favorites and viewing history.
// All routes require an authenticated subject.
type ListHandler struct {
	watchlist *services.WatchlistService
	favorites *services.FavoriteService
	history   *services.HistoryService
}

// NewListHandler constructs a list handler.
func NewListHandler(watchlist *services.WatchlistService, favorites *services.FavoriteService, history *services.HistoryService) *ListHandler {
	return &ListHandler{
		watchlist: watchlist,
		favorites: favorites,
		history:   history,
	}
}

type addListItemRequest struct {
	MediaKind  string `json:"media_kind" validate:"required,media_kind"`
	TMDBID     int    `json:"tmdb_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"max=512"`
	PosterPath string `json:"poster_path" validate:"max=256"`
}

func (r addListItemRequest) toInput() services.AddListItemInput {
	return services.AddListItemInput{
		MediaKind:  r.MediaKind,
		TMDBID:     r.TMDBID,
		Title:      r.Title,
		PosterPath: r.PosterPath,
	}
}

func listMeta(page, perPage int, total int64) *response.Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}
	return &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

// Watchlist handles GET /me/watchlist.
func (h *ListHandler) Watchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 20)

	items, total, err := h.watchlist.List(requestContext(c), userID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, listMeta(page, perPage, total))
}

// AddToWatchlist handles POST /me/watchlist.
func (h *ListHandler) AddToWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req addListItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.watchlist.Add(requestContext(c), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// RemoveFromWatchlist handles DELETE /me/watchlist/:kind/:id.
func (h *ListHandler) RemoveFromWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.watchlist.Remove(requestContext(c), userID, c.Param("kind"), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// Favorites handles GET /me/favorites.
func (h *ListHandler) Favorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 20)

	items, total, err := h.favorites.List(requestContext(c), userID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, listMeta(page, perPage, total))
}

// AddToFavorites handles POST /me/favorites.
func (h *ListHandler) AddToFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req addListItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.favorites.Add(requestContext(c), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// RemoveFromFavorites handles DELETE /me/favorites/:kind/:id.
func (h *ListHandler) RemoveFromFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.favorites.Remove(requestContext(c), userID, c.Param("kind"), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// History handles GET /me/history.
func (h *ListHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 20)

	entries, total, err := h.history.List(requestContext(c), userID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, entries, listMeta(page, perPage, total))
}

// RecordHistory handles POST /me/history.
func (h *ListHandler) RecordHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req addListItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.history.Record(requestContext(c), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// RemoveHistoryEntry handles DELETE /me/history/:id.
func (h *ListHandler) RemoveHistoryEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.history.Remove(requestContext(c), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// ClearHistory handles DELETE /me/history.
func (h *ListHandler) ClearHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	removed, err := h.history.Clear(requestContext(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}
