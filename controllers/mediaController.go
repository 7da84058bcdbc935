package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GetMedia serves an attachment by reference. The payload digest doubles as the
// entity tag.
func (h *Handlers) GetMedia(c *gin.Context) {
	ref := media.RefPrefix + strings.TrimPrefix(c.Param("ref"), "/")

	blob, ok := h.Engagement.Media(ref)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	etag := `"` + blob.Digest + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, max-age=31536000, immutable")
	if c.GetHeader("If-None-Match") == etag {
		c.AbortWithStatus(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, blob.Media_Type, blob.Data)
}
