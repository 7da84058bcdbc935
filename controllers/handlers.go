package controllers

import (
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/services"
)

// DefaultMaxUploadBytes bounds a multipart request body when none is configured.
const DefaultMaxUploadBytes = 64 << 20

// Handlers serves the HTTP routes on top of the shared engine.
type Handlers struct {
	Engagement     *services.EngagementService
	Moderation     *services.ModerationService
	Notices        *services.ModerationNoticeService
	MaxUploadBytes int64
}

func NewHandlers(app *initializers.App, maxUploadBytes int64) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handlers{
		Engagement:     app.Engagement,
		Moderation:     app.Moderation,
		Notices:        app.Notices,
		MaxUploadBytes: maxUploadBytes,
	}
}
