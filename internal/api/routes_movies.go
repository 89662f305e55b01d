package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/handlers"
)

func registerMovieRoutes(api gin.IRouter, h *handlers.MovieHandler) {
	movies := api.Group("/movies")
	{
		movies.GET("/trending", h.Trending)
		movies.GET("/popular", h.Popular)
		movies.GET("/top-rated", h.TopRated)
		movies.GET("/upcoming", h.Upcoming)
		movies.GET("/now-playing", h.NowPlaying)
		movies.GET("/:id", h.Details)
		movies.GET("/:id/credits", h.Credits)
		movies.GET("/:id/videos", h.Videos)
		movies.GET("/:id/similar", h.Similar)
		movies.GET("/:id/recommendations", h.Recommendations)
	}
}
