package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	_ "github.com/GaryKam/lets-eat/docs" // Ensure docs are imported
	"github.com/GaryKam/lets-eat/internal/config"
	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/providers/googleplaces"
	"github.com/GaryKam/lets-eat/internal/providers/ipapi"
	"github.com/GaryKam/lets-eat/internal/selector"
	"github.com/GaryKam/lets-eat/internal/session"
	"github.com/GaryKam/lets-eat/internal/types"
	"github.com/GaryKam/lets-eat/internal/view"
)

// PhotoFetcher downloads place photos for the photo proxy
type PhotoFetcher interface {
	FetchPhoto(ctx context.Context, ref types.PhotoReference) (*googleplaces.Photo, error)
}

// App encapsulates application dependencies
type App struct {
	router    *gin.Engine
	logger    *slog.Logger
	sessions  *session.Manager
	photos    PhotoFetcher
	photoRefs *photoRefs
	renderer  *view.Renderer
	cfg       *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	places := googleplaces.NewClient(googleplaces.Config{
		APIKey:         cfg.Places.APIKey,
		BaseURL:        cfg.Places.BaseURL,
		PhotoMaxWidth:  cfg.Places.PhotoMaxWidth,
		PhotoMaxHeight: cfg.Places.PhotoMaxHeight,
		Timeout:        cfg.Places.Timeout,
	}, logger)

	shared, err := newSharedSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Config{
		FixTimeout: cfg.Location.FixTimeout,
		Chooser:    cfg.Search.Chooser,
		Selector: selector.Options{
			MinRadius:     cfg.Search.MinRadius,
			MaxRadius:     cfg.Search.MaxRadius,
			UnitMeters:    cfg.Search.UnitMeters,
			PlaceType:     cfg.Places.PlaceType,
			SearchTimeout: cfg.Places.Timeout,
		},
	}, places, shared, logger)

	refs := newPhotoRefs()
	app := &App{
		router:    router,
		logger:    logger,
		sessions:  sessions,
		photos:    places,
		photoRefs: refs,
		renderer:  view.NewRenderer(refs.path, cfg.Search.UnitMeters),
		cfg:       cfg,
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// newSharedSource returns nil for device-reported fixes
func newSharedSource(cfg *config.Config, logger *slog.Logger) (location.FixSource, error) {
	switch cfg.Location.Source {
	case "device":
		return nil, nil
	case "static":
		return location.NewStaticSource(types.NewCoords(cfg.Location.StaticLatitude, cfg.Location.StaticLongitude)), nil
	case "ipapi":
		return ipapi.NewClient(cfg.Location.IPAPIURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown location source %q", cfg.Location.Source)
	}
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

// Close releases every open session
func (app *App) Close() {
	app.sessions.Close()
}
