package services

import (
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/store"
)

// ModerationService is held by the moderation authority only. It shares the
// engine's lock so approvals are ordered with every other operation.
type ModerationService struct {
	engine    *EngagementService
	moderator *store.Moderator
}

func NewModerationService(engine *EngagementService) *ModerationService {
	return &ModerationService{
		engine:    engine,
		moderator: store.NewModerator(engine.registry),
	}
}

// Approve publishes a pending item. Approving an approved item is a conflict.
func (m *ModerationService) Approve(itemID int) (models.PrayerItem, error) {
	var item models.PrayerItem
	err := m.engine.locks.execute(writeOperation, func() error {
		var err error
		item, err = m.moderator.Approve(itemID)
		return err
	})
	if err != nil {
		return models.PrayerItem{}, err
	}

	m.engine.metrics.Approved()
	m.engine.logger.Info("prayer item approved", "prayer_id", itemID)
	return item, nil
}

// Pending lists the items awaiting review, newest first.
func (m *ModerationService) Pending() []models.PrayerItem {
	var items []models.PrayerItem
	_ = m.engine.locks.execute(readOperation, func() error {
		items = m.moderator.Pending()
		return nil
	})
	return items
}
