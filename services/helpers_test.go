package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/store"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func fixedClock() time.Time {
	return time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) (*EngagementService, *media.Library, *MetricsService) {
	t.Helper()
	comments := store.NewCommentStore(fixedClock)
	registry := store.NewRegistry(comments, store.RegistryOptions{Clock: fixedClock})
	library := media.NewLibrary()
	metrics := NewMetricsService()
	engine := NewEngagementService(EngagementOptions{
		Registry:  registry,
		Validator: media.NewValidator(media.Policy{MaxImageBytes: 64}),
		Library:   library,
		Metrics:   metrics,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return engine, library, metrics
}

func image(name string) media.File {
	return media.File{Name: name, MediaType: "image/png", Data: pngHeader}
}

func images(n int) []media.File {
	files := make([]media.File, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, image("photo.png"))
	}
	return files
}

func voice() *media.File {
	return &media.File{Name: "voice.webm", MediaType: "audio/webm", Data: []byte("opus")}
}

func submitPrayer(t *testing.T, e *EngagementService, author string) models.PrayerItem {
	t.Helper()
	item, err := e.SubmitPrayer(models.PrayerItemCreate{
		Description: "Please pray for healing",
		Categories:  []string{"病人醫治"},
		Author_Name: author,
	}, nil)
	if err != nil {
		t.Fatalf("submit prayer: %v", err)
	}
	return item
}
