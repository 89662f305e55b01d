package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cinebase/cinebase/internal/app"
	iauth "github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/handlers"
	"github.com/cinebase/cinebase/internal/middleware"
	"github.com/cinebase/cinebase/internal/services"
)

// Dependencies carries the collaborators the router wires into handlers.
type Dependencies struct {
	DB       *gorm.DB
	Config   *app.Config
	Verifier iauth.TokenVerifier

	Movies    *services.MovieService
	TV        *services.TVService
	Genres    *services.GenreService
	Search    *services.SearchService
	Watchlist *services.WatchlistService
	Favorites *services.FavoriteService
	History   *services.HistoryService
}

func (d Dependencies) validate() error {
	switch {
	case d.DB == nil:
		return fmt.Errorf("database handle must be provided")
	case d.Config == nil:
		return fmt.Errorf("config must be provided")
	case d.Verifier == nil:
		return fmt.Errorf("token verifier must be provided")
	case d.Movies == nil, d.TV == nil, d.Genres == nil, d.Search == nil:
		return fmt.Errorf("catalog services must be provided")
	case d.Watchlist == nil, d.Favorites == nil, d.History == nil:
		return fmt.Errorf("list services must be provided")
	}
	return nil
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
// Catalog routes are public; the per-user list routes require a bearer token.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	cfg := deps.Config

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	rateLimit := cfg.Server.RateLimit
	window := cfg.Server.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	if rateLimit > 0 {
		r.Use(middleware.RateLimit(rateLimit, window))
	}

	// Health endpoints (public)
	r.GET("/health", handlers.Health())
	r.GET("/health/ready", handlers.Ready(deps.DB))

	api := r.Group("/api")

	registerMovieRoutes(api, handlers.NewMovieHandler(deps.Movies))
	registerTVRoutes(api, handlers.NewTVHandler(deps.TV))
	registerDiscoveryRoutes(api, handlers.NewGenreHandler(deps.Genres), handlers.NewSearchHandler(deps.Search))

	// Per-user lists require a verified identity.
	me := api.Group("/me")
	me.Use(middleware.Auth(deps.Verifier))
	registerListRoutes(me, handlers.NewListHandler(deps.Watchlist, deps.Favorites, deps.History))

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
