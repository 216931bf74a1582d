package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/selector"
	"github.com/GaryKam/lets-eat/internal/view"
)

// FindPlaceInput is a press of the "find a place" button
type FindPlaceInput struct {
	Radius int `json:"radius" binding:"required" example:"5"` // Slider position in miles
}

// EventsResponse holds the notices and dialogs queued since the last drain
type EventsResponse struct {
	Events []view.Notice `json:"events"`
}

// handleFindPlace godoc
// @Summary Find a place to eat
// @Description Starts a nearby search around the cached fix and waits for it. Returns 202 with the current screen if the search is still running when the wait times out.
// @Tags place
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body FindPlaceInput true "Search radius"
// @Success 200 {object} view.Screen
// @Success 202 {object} view.Screen
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/place [post]
func (app *App) handleFindPlace(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	var input FindPlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	display, err := s.FindPlace(c.Request.Context(), input.Radius, app.cfg.Server.AwaitTimeout)
	status := http.StatusOK
	if err != nil {
		switch {
		case errors.Is(err, selector.ErrRadiusOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, selector.ErrClosed):
			c.JSON(http.StatusNotFound, gin.H{"error": "session closed"})
			return
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusAccepted
		default:
			app.logger.Error("failed to find place", "session_id", s.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find place"})
			return
		}
	}

	c.JSON(status, app.renderer.Render(display, s.Selector().State()))
}

// handleGetPlace godoc
// @Summary Get the current screen
// @Description Returns the place on display, or the error text when there is none
// @Tags place
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} view.Screen
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/place [get]
func (app *App) handleGetPlace(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	sel := s.Selector()
	c.JSON(http.StatusOK, app.renderer.Render(sel.Display(), sel.State()))
}

// handleGetEvents godoc
// @Summary Drain pending notices
// @Description Returns and clears the transient notices and dialogs queued for this session
// @Tags place
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} EventsResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/events [get]
func (app *App) handleGetEvents(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, EventsResponse{
		Events: view.RenderEvents(s.Selector().Events()),
	})
}
