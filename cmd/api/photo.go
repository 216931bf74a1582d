package main

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/GaryKam/lets-eat/internal/types"
)

const (
	maxPhotoRefLen    = 1024
	maxIssuedPhotoRef = 4096
)

// photoRefs remembers the photo references handed out on rendered screens.
// The proxy only forwards those, oldest evicted first.
type photoRefs struct {
	mu     sync.Mutex
	issued map[types.PhotoReference]struct{}
	order  []types.PhotoReference
}

func newPhotoRefs() *photoRefs {
	return &photoRefs{issued: make(map[types.PhotoReference]struct{})}
}

// path records ref and returns its proxy URL
func (p *photoRefs) path(ref types.PhotoReference) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.issued[ref]; !ok {
		if len(p.order) >= maxIssuedPhotoRef {
			delete(p.issued, p.order[0])
			p.order = p.order[1:]
		}
		p.issued[ref] = struct{}{}
		p.order = append(p.order, ref)
	}
	return "/photos/" + url.PathEscape(string(ref))
}

func (p *photoRefs) known(ref types.PhotoReference) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.issued[ref]
	return ok
}

// handleGetPhoto godoc
// @Summary Get a place photo
// @Description Proxies the image behind a photo reference shown on a rendered screen, so the Places API key stays on the server
// @Tags place
// @Produce image/jpeg
// @Param ref path string true "Photo reference"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /photos/{ref} [get]
func (app *App) handleGetPhoto(c *gin.Context) {
	ref := types.PhotoReference(c.Param("ref"))
	if ref == "" || len(ref) > maxPhotoRefLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo reference"})
		return
	}
	if !app.photoRefs.known(ref) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown photo reference"})
		return
	}

	photo, err := app.photos.FetchPhoto(c.Request.Context(), ref)
	if err != nil {
		app.logger.Error("failed to fetch photo", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch photo"})
		return
	}

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, photo.Data)
}
