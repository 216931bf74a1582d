package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/selector"
	"github.com/GaryKam/lets-eat/internal/view"
)

// PermissionRequestResponse carries the code the client must echo back with the prompt result
type PermissionRequestResponse struct {
	RequestCode    int    `json:"requestCode,omitempty" example:"1"`
	AlreadyGranted bool   `json:"alreadyGranted"`
	Status         string `json:"status" example:"not_determined"`
}

// PermissionResultInput is the user's answer to a permission prompt
type PermissionResultInput struct {
	RequestCode int    `json:"requestCode" binding:"required" example:"1"`
	Outcome     string `json:"outcome" binding:"required,oneof=granted denied interrupted" example:"granted"`
	Permanent   bool   `json:"permanent"`                              // "don't ask again" was checked
	Radius      int    `json:"radius" binding:"omitempty" example:"5"` // Slider position used if a search starts
}

// PermissionResultResponse describes how the session reacted to the answer
type PermissionResultResponse struct {
	Status   string            `json:"status" example:"granted"`
	Reaction selector.Reaction `json:"reaction"`
	Screen   *view.Screen      `json:"screen,omitempty"` // set when a search was triggered
}

// handleRequestPermission godoc
// @Summary Request location permission
// @Description Opens a permission prompt and returns its request code, or reports that permission is already granted
// @Tags permission
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} PermissionRequestResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/permission/request [post]
func (app *App) handleRequestPermission(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	req := s.RequestPermission()
	c.JSON(http.StatusOK, PermissionRequestResponse{
		RequestCode:    req.Code,
		AlreadyGranted: req.AlreadyGranted,
		Status:         string(s.PermissionStatus()),
	})
}

// handlePermissionResult godoc
// @Summary Deliver a permission result
// @Description Resolves a pending permission request. A grant starts one search; a first denial queues a rationale dialog.
// @Tags permission
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param result body PermissionResultInput true "Prompt result"
// @Success 200 {object} PermissionResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/permission/result [post]
func (app *App) handlePermissionResult(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	var input PermissionResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Radius == 0 {
		input.Radius = app.cfg.Search.DefaultRadius
	}
	// checked up front so a bad radius does not consume the request code
	if err := app.checkRadius(input.Radius); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := permission.ParseOutcome(input.Outcome)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, reaction, err := s.ResolvePermission(c.Request.Context(), input.RequestCode, outcome, input.Permanent, input.Radius)
	if err != nil {
		switch {
		case errors.Is(err, permission.ErrUnknownRequest):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, selector.ErrClosed):
			c.JSON(http.StatusNotFound, gin.H{"error": "session closed"})
		default:
			app.logger.Error("failed to resolve permission",
				"session_id", s.ID,
				"request_code", input.RequestCode,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve permission"})
		}
		return
	}

	resp := PermissionResultResponse{
		Status:   string(s.PermissionStatus()),
		Reaction: reaction,
	}
	if reaction.RequestID != 0 {
		display, err := s.Await(c.Request.Context(), reaction.RequestID, app.cfg.Server.AwaitTimeout)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			app.logger.Warn("failed to await search", "session_id", s.ID, "error", err)
		}
		screen := app.renderer.Render(display, s.Selector().State())
		resp.Screen = &screen
	}

	app.logger.Debug("permission result handled",
		"session_id", s.ID,
		"outcome", result.Outcome,
		"rationale", reaction.RationaleShown,
	)
	c.JSON(http.StatusOK, resp)
}
