package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/handlers"
)

func registerListRoutes(me gin.IRouter, h *handlers.ListHandler) {
	me.GET("/watchlist", h.Watchlist)
	me.POST("/watchlist", h.AddToWatchlist)
	me.DELETE("/watchlist/:kind/:id", h.RemoveFromWatchlist)

	me.GET("/favorites", h.Favorites)
	me.POST("/favorites", h.AddToFavorites)
	me.DELETE("/favorites/:kind/:id", h.RemoveFromFavorites)

	me.GET("/history", h.History)
	me.POST("/history", h.RecordHistory)
	me.DELETE("/history/:id", h.RemoveHistoryEntry)
	me.DELETE("/history", h.ClearHistory)
}
