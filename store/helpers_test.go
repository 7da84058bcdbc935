package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PrayerWall/models"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock(date string) *fakeClock {
	c := &fakeClock{}
	c.set(date)
	return c
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) set(date string) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	c.now = t
}

func newTestRegistry(t *testing.T, clock *fakeClock) *Registry {
	t.Helper()
	comments := NewCommentStore(clock.Now)
	return NewRegistry(comments, RegistryOptions{Clock: clock.Now})
}

func submit(t *testing.T, r *Registry, author string, categories ...string) models.PrayerItem {
	t.Helper()
	item, err := r.Submit(models.PrayerItemCreate{
		Description: "Please pray for healing",
		Categories:  categories,
		Author_Name: author,
	})
	require.NoError(t, err)
	return item
}

func text(author, content string) models.CommentCreate {
	return models.CommentCreate{Author_Name: author, Content: content}
}
