package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/handlers"
)

func registerDiscoveryRoutes(api gin.IRouter, genres *handlers.GenreHandler, search *handlers.SearchHandler) {
	g := api.Group("/genres")
	{
		g.GET("/movies", genres.Movies)
		g.GET("/tv", genres.TV)
	}

	s := api.Group("/search")
	{
		s.GET("/movies", search.Movies)
		s.GET("/tv", search.TV)
		s.GET("/multi", search.Multi)
	}

	api.GET("/discover/:kind", search.Discover)
}
