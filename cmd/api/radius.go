package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/view"
)

// RadiusLabelInput defines the query parameters for the radius label endpoint
type RadiusLabelInput struct {
	Radius int `form:"radius" binding:"required"` // Slider position in miles
}

// RadiusLabelResponse is the rendered slider label
type RadiusLabelResponse struct {
	Radius int    `json:"radius" example:"5"`
	Label  string `json:"label" example:"5 miles"`
}

// handleRadiusLabel godoc
// @Summary Render the radius slider label
// @Description Returns the pluralised label for a slider position, e.g. "1 mile" or "5 miles"
// @Tags radius
// @Produce json
// @Param radius query int true "Slider position" minimum(1) maximum(50) example(5)
// @Success 200 {object} RadiusLabelResponse
// @Failure 400 {object} map[string]string
// @Router /radius/label [get]
func (app *App) handleRadiusLabel(c *gin.Context) {
	var input RadiusLabelInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := app.checkRadius(input.Radius); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RadiusLabelResponse{
		Radius: input.Radius,
		Label:  view.RadiusLabel(input.Radius),
	})
}

func (app *App) checkRadius(radius int) error {
	if radius < app.cfg.Search.MinRadius || radius > app.cfg.Search.MaxRadius {
		return fmt.Errorf("radius must be between %d and %d", app.cfg.Search.MinRadius, app.cfg.Search.MaxRadius)
	}
	return nil
}
