package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cinebase/cinebase/internal/api"
	"github.com/cinebase/cinebase/internal/app"
	"github.com/cinebase/cinebase/internal/app/maintenance"
	iauth "github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/database"
	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/internal/tmdb"
	"github.com/cinebase/cinebase/pkg/logger"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, upstream client, services and
// the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	store := cache.NewDatabaseStore(stack.DB)

	upstream, err := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, tmdb.WithTimeout(cfg.TMDB.Timeout))
	if err != nil {
		return nil, fmt.Errorf("initialise upstream client: %w", err)
	}

	fetcher, err := cache.NewFetcher(upstream, store)
	if err != nil {
		return nil, fmt.Errorf("initialise cache fetcher: %w", err)
	}

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	movies, err := services.NewMovieService(fetcher)
	if err != nil {
		return nil, fmt.Errorf("initialise movie service: %w", err)
	}
	shows, err := services.NewTVService(fetcher)
	if err != nil {
		return nil, fmt.Errorf("initialise tv service: %w", err)
	}
	genres, err := services.NewGenreService(fetcher)
	if err != nil {
		return nil, fmt.Errorf("initialise genre service: %w", err)
	}
	search, err := services.NewSearchService(fetcher)
	if err != nil {
		return nil, fmt.Errorf("initialise search service: %w", err)
	}
	watchlist, err := services.NewWatchlistService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise watchlist service: %w", err)
	}
	favorites, err := services.NewFavoriteService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise favorites service: %w", err)
	}
	history, err := services.NewHistoryService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise history service: %w", err)
	}

	if cfg.Maintenance.Enabled {
		stack.Cleaner, err = maintenance.NewCleaner(store, history, maintenance.Options{
			Schedule:         cfg.Maintenance.Schedule,
			HistoryRetention: cfg.Maintenance.HistoryRetention,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise maintenance cleaner: %w", err)
		}
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	stack.Router, err = api.NewRouter(api.Dependencies{
		DB:        stack.DB,
		Config:    cfg,
		Verifier:  verifier,
		Movies:    movies,
		TV:        shows,
		Genres:    genres,
		Search:    search,
		Watchlist: watchlist,
		Favorites: favorites,
		History:   history,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func buildVerifier(ctx context.Context, cfg *app.Config) (iauth.TokenVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Auth.Mode)) {
	case "oidc":
		verifier, err := iauth.NewOIDCVerifier(ctx, iauth.OIDCConfig{
			IssuerURL: cfg.Auth.OIDC.IssuerURL,
			Audience:  cfg.Auth.OIDC.Audience,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise oidc verifier: %w", err)
		}
		return verifier, nil
	case "static":
		verifier, err := iauth.NewStaticVerifier(iauth.StaticConfig{
			Secret: cfg.Auth.Static.Secret,
			Issuer: cfg.Auth.Static.Issuer,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise static verifier: %w", err)
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

// Shutdown stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		s.Cleaner.Stop()
		if err := s.Cleaner.RunOnce(context.Background()); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database.Connection())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(cfg.Database.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
