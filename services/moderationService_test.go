package services

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrayerWall/models"
)

func TestModerationService(t *testing.T) {
	engine, _, metrics := newTestEngine(t)
	moderation := NewModerationService(engine)
	first := submitPrayer(t, engine, "陳太")
	second := submitPrayer(t, engine, "李先生")

	pending := moderation.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, second.Prayer_Item_ID, pending[0].Prayer_Item_ID)

	approved, err := moderation.Approve(first.Prayer_Item_ID)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusApproved, approved.Moderation_Status)

	_, err = moderation.Approve(first.Prayer_Item_ID)
	assert.ErrorIs(t, err, models.ErrConflict)
	_, err = moderation.Approve(404)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := engine.GetPrayer(first.Prayer_Item_ID)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusApproved, got.Moderation_Status)
	assert.Len(t, moderation.Pending(), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.approvals))
}
