package initializers

import (
	"fmt"
	"log/slog"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/seed"
	"github.com/PrayerWall/services"
	"github.com/PrayerWall/store"
)

// App holds the long-lived services shared by every request.
type App struct {
	Engagement *services.EngagementService
	Moderation *services.ModerationService
	Notices    *services.ModerationNoticeService
	Metrics    *services.MetricsService
}

// NewApp builds the engagement engine from cfg and, when enabled, restores the
// sample content into it.
func NewApp(cfg *Config, logger *slog.Logger) (*App, error) {
	metrics := services.NewMetricsService()

	comments := store.NewCommentStore(nil)
	registry := store.NewRegistry(comments, store.RegistryOptions{
		Images:      store.NewCategoryImages(cfg.Categories.Table(), cfg.Categories.FallbackImage),
		SearchTitle: cfg.Search.IncludeTitle,
	})

	engine := services.NewEngagementService(services.EngagementOptions{
		Registry: registry,
		Validator: media.NewValidator(media.Policy{
			MaxImageBytes: cfg.Media.MaxImageBytes,
			MaxItemImages: cfg.Media.MaxItemImages,
		}),
		Library: media.NewLibrary(),
		Metrics: metrics,
		Logger:  logger,
	})

	if !cfg.Seed.Disabled {
		seeds, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			return nil, err
		}
		if err := engine.Restore(seeds); err != nil {
			return nil, fmt.Errorf("seed: restore: %w", err)
		}
		logger.Info("sample content restored", "items", len(seeds))
	}

	return &App{
		Engagement: engine,
		Moderation: services.NewModerationService(engine),
		Notices: services.NewModerationNoticeService(services.NoticeOptions{
			APIKey:     cfg.Notice.ResendAPIKey,
			From:       cfg.Notice.From,
			Moderators: cfg.Notice.Moderators,
		}, logger),
		Metrics: metrics,
	}, nil
}

// Table merges the configured category images over the built-in table.
func (c CategoryConfig) Table() map[string]string {
	table := make(map[string]string, len(store.DefaultCategoryImageTable)+len(c.Images))
	for k, v := range store.DefaultCategoryImageTable {
		table[k] = v
	}
	for k, v := range c.Images {
		table[k] = v
	}
	return table
}
