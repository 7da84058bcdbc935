package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
)

// respondError maps engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validation *models.ValidationError
	var rejected *models.MediaRejectedError
	var device *models.DeviceError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "media rejected", "rejections": rejected.Rejections})
	case errors.As(err, &device):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": device.Message(), "reason": device.Reason})
	case errors.Is(err, models.ErrParentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, media.ErrRecordingInProgress),
		errors.Is(err, media.ErrNotRecording),
		errors.Is(err, media.ErrFeedUnsupported):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting state"})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
