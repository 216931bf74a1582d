package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/session"
	"github.com/GaryKam/lets-eat/internal/types"
)

// ReportLocationInput is a device location update. Either field group may be omitted.
type ReportLocationInput struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90" example:"39.11539"`     // Latitude in decimal degrees
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180" example:"-107.6584"` // Longitude in decimal degrees
	Enabled   *bool    `json:"enabled"`                                                            // Whether location services are on
	// Permission changed in system settings; overrides the gate without a prompt
	PermissionGranted *bool `json:"permissionGranted"`
}

// LocationStatusResponse reports what the session knows about its location
type LocationStatusResponse struct {
	Available        bool          `json:"available"`
	PermissionStatus string        `json:"permissionStatus" example:"granted"`
	Location         *types.Coords `json:"location,omitempty"`
}

// handleReportLocation godoc
// @Summary Report a device location
// @Description Records a fix, the location services switch and/or a permission change reported by the device, then refreshes the cached fix
// @Tags location
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param report body ReportLocationInput true "Location report"
// @Success 200 {object} LocationStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/location [post]
func (app *App) handleReportLocation(c *gin.Context) {
	s, ok := app.lookupSession(c)
	if !ok {
		return
	}

	var input ReportLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be sent together"})
		return
	}

	var fix *types.Coords
	if input.Latitude != nil {
		coords := types.NewCoords(*input.Latitude, *input.Longitude)
		fix = &coords
	}

	if input.PermissionGranted != nil {
		if err := s.SetPermissionGranted(c.Request.Context(), *input.PermissionGranted); err != nil {
			if errors.Is(err, session.ErrReportUnsupported) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			app.logger.Warn("location refresh after grant failed",
				"session_id", s.ID,
				"error", err,
			)
		}
		if fix == nil && input.Enabled == nil {
			c.JSON(http.StatusOK, app.locationStatus(s))
			return
		}
	}

	if err := s.ReportLocation(c.Request.Context(), fix, input.Enabled); err != nil {
		switch {
		case errors.Is(err, session.ErrReportUnsupported),
			errors.Is(err, session.ErrEmptyReport),
			errors.Is(err, location.ErrInvalidLatitude),
			errors.Is(err, location.ErrInvalidLongitude):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			// the report was recorded; only the refresh failed
			app.logger.Warn("location refresh failed",
				"session_id", s.ID,
				"error", err,
			)
		}
	}

	c.JSON(http.StatusOK, app.locationStatus(s))
}

func (app *App) locationStatus(s *session.Session) LocationStatusResponse {
	resp := LocationStatusResponse{
		Available:        s.Provider().IsAvailable(),
		PermissionStatus: string(s.PermissionStatus()),
	}
	if fix, ok := s.Provider().CurrentLocation(); ok {
		resp.Location = &fix
	}
	return resp
}
