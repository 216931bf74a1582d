package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Slider label
	app.router.GET("/radius/label", app.handleRadiusLabel)

	// Session endpoints
	app.router.POST("/sessions", app.handleCreateSession)
	sessions := app.router.Group("/sessions/:id")
	{
		sessions.DELETE("", app.handleDeleteSession)
		sessions.POST("/location", app.handleReportLocation)
		sessions.POST("/permission/request", app.handleRequestPermission)
		sessions.POST("/permission/result", app.handlePermissionResult)
		sessions.POST("/place", app.handleFindPlace)
		sessions.GET("/place", app.handleGetPlace)
		sessions.GET("/events", app.handleGetEvents)
	}

	// Photo proxy
	app.router.GET("/photos/:ref", app.handleGetPhoto)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
