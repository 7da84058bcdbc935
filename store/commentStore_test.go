package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrayerWall/models"
)

func TestAddCommentValidation(t *testing.T) {
	audio := "media/voice"

	tests := []struct {
		name          string
		input         models.CommentCreate
		expectedError error
	}{
		{"text only", text("陳太", "同心代禱"), nil},
		{"image only with blank text", models.CommentCreate{Author_Name: "陳太", Content: "   ", Images: []string{"media/a"}}, nil},
		{"audio only", models.CommentCreate{Author_Name: "陳太", Audio: &audio}, nil},
		{"blank text and no media", text("陳太", " \n\t"), models.ErrValidation},
		{"missing author", text("", "hello"), models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock("2026-02-02")
			r := newTestRegistry(t, clock)
			item := submit(t, r, "陳太", "病人醫治")

			_, err := r.Comments().AddComment(item.Prayer_Item_ID, tt.input)

			count, _ := r.CommentCount(item.Prayer_Item_ID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, 0, count)
				comments, _ := r.Comments().Comments(item.Prayer_Item_ID)
				assert.Empty(t, comments)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}
		})
	}
}

func TestAddCommentUnknownItem(t *testing.T) {
	s := NewCommentStore(nil)

	_, err := s.AddComment(42, text("a", "b"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.AddReply(42, 1, text("a", "b"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.IncrementPray(42, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRootCommentsNewestFirst(t *testing.T) {
	orders := [][]string{
		{"2026-02-01", "2026-02-02"},
		{"2026-02-02", "2026-02-01"},
	}

	for _, dates := range orders {
		clock := newFakeClock(dates[0])
		r := newTestRegistry(t, clock)
		item := submit(t, r, "陳太", "病人醫治")

		for _, d := range dates {
			clock.set(d)
			_, err := r.Comments().AddComment(item.Prayer_Item_ID, text("李先生", d))
			require.NoError(t, err)
		}

		comments, err := r.Comments().Comments(item.Prayer_Item_ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "2026-02-02", comments[0].Date)
		assert.Equal(t, "2026-02-01", comments[1].Date)
	}
}

func TestRootCommentsSameDateLatestFirst(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")

	first, _ := r.Comments().AddComment(item.Prayer_Item_ID, text("a", "first"))
	second, _ := r.Comments().AddComment(item.Prayer_Item_ID, text("b", "second"))

	comments, _ := r.Comments().Comments(item.Prayer_Item_ID)
	assert.Equal(t, second.Comment_ID, comments[0].Comment_ID)
	assert.Equal(t, first.Comment_ID, comments[1].Comment_ID)
}

func TestRepliesInInsertionOrder(t *testing.T) {
	clock := newFakeClock("2026-02-03")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	parent, err := r.Comments().AddComment(item.Prayer_Item_ID, text("a", "parent"))
	require.NoError(t, err)

	first, err := r.Comments().AddReply(item.Prayer_Item_ID, parent.Comment_ID, text("b", "first"))
	require.NoError(t, err)
	clock.set("2026-02-01")
	second, err := r.Comments().AddReply(item.Prayer_Item_ID, parent.Comment_ID, text("c", "second"))
	require.NoError(t, err)

	got, err := r.Comments().Comment(item.Prayer_Item_ID, parent.Comment_ID)
	require.NoError(t, err)
	require.Len(t, got.Replies, 2)
	assert.Equal(t, first.Comment_ID, got.Replies[0].Comment_ID)
	assert.Equal(t, second.Comment_ID, got.Replies[1].Comment_ID)
}

func TestReplyDoesNotChangeCommentCount(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	parent, _ := r.Comments().AddComment(item.Prayer_Item_ID, text("a", "parent"))

	for i := 0; i < 3; i++ {
		_, err := r.Comments().AddReply(item.Prayer_Item_ID, parent.Comment_ID, text("b", "reply"))
		require.NoError(t, err)

		count, err := r.CommentCount(item.Prayer_Item_ID)
		require.NoError(t, err)
		comments, _ := r.Comments().Comments(item.Prayer_Item_ID)
		assert.Equal(t, 1, count)
		assert.Equal(t, len(comments), count)
	}

	got, _ := r.Get(item.Prayer_Item_ID)
	assert.Equal(t, 1, got.Comment_Count)
}

func TestNestedRepliesAnyDepth(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	s := r.Comments()

	root, _ := s.AddComment(item.Prayer_Item_ID, text("a", "root"))
	level1, err := s.AddReply(item.Prayer_Item_ID, root.Comment_ID, text("b", "level 1"))
	require.NoError(t, err)
	level2, err := s.AddReply(item.Prayer_Item_ID, level1.Comment_ID, text("c", "level 2"))
	require.NoError(t, err)
	level3, err := s.AddReply(item.Prayer_Item_ID, level2.Comment_ID, text("d", "level 3"))
	require.NoError(t, err)

	n, err := s.IncrementPray(item.Prayer_Item_ID, level3.Comment_ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	comments, _ := s.Comments(item.Prayer_Item_ID)
	require.Len(t, comments, 1)
	deepest := comments[0].Replies[0].Replies[0].Replies[0]
	assert.Equal(t, level3.Comment_ID, deepest.Comment_ID)
	assert.Equal(t, 1, deepest.Pray_Count)
	assert.Empty(t, deepest.Replies)

	count, _ := r.CommentCount(item.Prayer_Item_ID)
	assert.Equal(t, 1, count)
}

func TestAddReplyParentNotFound(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	other := submit(t, r, "李先生", "家庭關係")
	foreign, _ := r.Comments().AddComment(other.Prayer_Item_ID, text("a", "elsewhere"))

	_, err := r.Comments().AddReply(item.Prayer_Item_ID, 999, text("b", "reply"))
	assert.ErrorIs(t, err, models.ErrParentNotFound)

	_, err = r.Comments().AddReply(item.Prayer_Item_ID, foreign.Comment_ID, text("b", "reply"))
	assert.ErrorIs(t, err, models.ErrParentNotFound)

	got, _ := r.Comments().Comment(other.Prayer_Item_ID, foreign.Comment_ID)
	assert.Empty(t, got.Replies)
}

func TestCommentPrayLeavesItemCount(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	c, _ := r.Comments().AddComment(item.Prayer_Item_ID, text("a", "amen"))
	reply, _ := r.Comments().AddReply(item.Prayer_Item_ID, c.Comment_ID, text("b", "amen"))

	for i := 1; i <= 3; i++ {
		n, err := r.Comments().IncrementPray(item.Prayer_Item_ID, c.Comment_ID)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, err := r.Comments().IncrementPray(item.Prayer_Item_ID, reply.Comment_ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = r.Comments().IncrementPray(item.Prayer_Item_ID, 12345)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, _ := r.Get(item.Prayer_Item_ID)
	assert.Equal(t, 0, got.Pray_Count)
}

func TestCommentSnapshotsAreCopies(t *testing.T) {
	clock := newFakeClock("2026-02-02")
	r := newTestRegistry(t, clock)
	item := submit(t, r, "陳太", "病人醫治")
	images := []string{"media/a"}
	c, _ := r.Comments().AddComment(item.Prayer_Item_ID, models.CommentCreate{Author_Name: "a", Images: images})

	images[0] = "changed"
	c.Images[0] = "changed too"

	got, _ := r.Comments().Comment(item.Prayer_Item_ID, c.Comment_ID)
	assert.Equal(t, []string{"media/a"}, got.Images)
	assert.Equal(t, "", got.Content)
}
