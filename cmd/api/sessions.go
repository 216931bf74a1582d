package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/session"
	"github.com/GaryKam/lets-eat/internal/view"
)

// CreateSessionResponse describes a freshly opened session
type CreateSessionResponse struct {
	ID               string `json:"id" example:"3f6c2a0e-8a4b-4e57-9d7e-1c2b3a4d5e6f"`
	PermissionStatus string `json:"permissionStatus" example:"not_determined"`
	AcceptsReports   bool   `json:"acceptsReports"` // true when the client must POST its own fixes
	MinRadius        int    `json:"minRadius" example:"1"`
	MaxRadius        int    `json:"maxRadius" example:"50"`
	DefaultRadius    int    `json:"defaultRadius" example:"5"`
	RadiusLabel      string `json:"radiusLabel" example:"5 miles"`
}

// handleCreateSession godoc
// @Summary Open a session
// @Description Creates a session with its own permission state, location cache and place selector
// @Tags sessions
// @Produce json
// @Success 201 {object} CreateSessionResponse
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (app *App) handleCreateSession(c *gin.Context) {
	s, err := app.sessions.Create(c.Request.Context())
	if err != nil {
		app.logger.Error("failed to create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		ID:               s.ID,
		PermissionStatus: string(s.PermissionStatus()),
		AcceptsReports:   s.AcceptsReports(),
		MinRadius:        app.cfg.Search.MinRadius,
		MaxRadius:        app.cfg.Search.MaxRadius,
		DefaultRadius:    app.cfg.Search.DefaultRadius,
		RadiusLabel:      view.RadiusLabel(app.cfg.Search.DefaultRadius),
	})
}

// handleDeleteSession godoc
// @Summary Close a session
// @Description Closes the session; searches still in flight are discarded
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [delete]
func (app *App) handleDeleteSession(c *gin.Context) {
	if err := app.sessions.Delete(c.Param("id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		app.logger.Error("failed to delete session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// lookupSession writes a 404 and returns false when the path id is unknown
func (app *App) lookupSession(c *gin.Context) (*session.Session, bool) {
	s, err := app.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}
