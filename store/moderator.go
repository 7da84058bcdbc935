package store

import "github.com/PrayerWall/models"

// Moderator is the only path that changes an item's moderation status. It is
// handed to the moderation authority and never to the submission path.
type Moderator struct {
	registry *Registry
}

func NewModerator(r *Registry) *Moderator {
	return &Moderator{registry: r}
}

// Approve moves a pending item to approved. Status advances once; approving an
// approved item is a conflict.
func (m *Moderator) Approve(id int) (models.PrayerItem, error) {
	item, ok := m.registry.items[id]
	if !ok {
		return models.PrayerItem{}, models.ErrNotFound
	}
	if item.Moderation_Status == models.ModerationStatusApproved {
		return models.PrayerItem{}, models.ErrConflict
	}
	item.Moderation_Status = models.ModerationStatusApproved
	return m.registry.snapshot(item), nil
}

// Pending lists items awaiting review, in registry order.
func (m *Moderator) Pending() []models.PrayerItem {
	out := []models.PrayerItem{}
	for _, id := range m.registry.order {
		if item := m.registry.items[id]; item.Moderation_Status == models.ModerationStatusPending {
			out = append(out, m.registry.snapshot(item))
		}
	}
	return out
}
