package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/handlers"
)

func registerTVRoutes(api gin.IRouter, h *handlers.TVHandler) {
	tv := api.Group("/tv")
	{
		tv.GET("/trending", h.Trending)
		tv.GET("/popular", h.Popular)
		tv.GET("/top-rated", h.TopRated)
		tv.GET("/:id", h.Details)
		tv.GET("/:id/credits", h.Credits)
		tv.GET("/:id/videos", h.Videos)
		tv.GET("/:id/similar", h.Similar)
		tv.GET("/:id/recommendations", h.Recommendations)
	}
}
