package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
)

// Test CreateComment
func TestCreateComment(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		fields         map[string][]string
		files          map[string][]media.File
		expectedStatus int
		expectedImages int
		expectAudio    bool
	}{
		{
			name:           "successful text comment",
			fields:         map[string][]string{"content": {"為您禱告"}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "successful image only comment",
			files:          map[string][]media.File{"images": {MockImage("1.png"), MockImage("2.png"), MockImage("3.png"), MockImage("4.png"), MockImage("5.png"), MockImage("6.png")}},
			expectedStatus: http.StatusCreated,
			expectedImages: 6,
		},
		{
			name:           "successful voice note",
			files:          map[string][]media.File{"audio": {MockAudio()}},
			expectedStatus: http.StatusCreated,
			expectAudio:    true,
		},
		{
			name:           "bad request - blank comment",
			fields:         map[string][]string{"content": {"   "}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - two audio files",
			files:          map[string][]media.File{"audio": {MockAudio(), MockAudio()}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unprocessable - audio that is not audio",
			files:          map[string][]media.File{"audio": {MockImage("voice.png")}},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "not found - unknown prayer",
			prayerID:       "999",
			fields:         map[string][]string{"content": {"為您禱告"}},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - invalid prayer ID",
			prayerID:       "abc",
			fields:         map[string][]string{"content": {"為您禱告"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SetupTestHandlers(t)
			item, err := h.Engagement.SubmitPrayer(MockPrayerCreate("陳太"), nil)
			require.NoError(t, err)
			prayerID := strconv.Itoa(item.Prayer_Item_ID)
			if tt.prayerID != "" {
				prayerID = tt.prayerID
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, "王姐妹", false)
			c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: prayerID})
			c.Request = NewMultipartRequest(http.MethodPost, "/prayers/"+prayerID+"/comments", tt.fields, tt.files)

			h.CreateComment(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			count, err := h.Engagement.CommentCount(item.Prayer_Item_ID)
			require.NoError(t, err)

			if tt.expectedStatus != http.StatusCreated {
				assert.Equal(t, 0, count)
				return
			}

			var response models.Comment
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "王姐妹", response.Author_Name)
			assert.Equal(t, 0, response.Pray_Count)
			assert.Len(t, response.Images, tt.expectedImages)
			assert.Equal(t, tt.expectAudio, response.Audio != nil)
			assert.Equal(t, 1, count)
		})
	}
}

// Test CreateReply
func TestCreateReply(t *testing.T) {
	h := SetupTestHandlers(t)
	item, err := h.Engagement.SubmitPrayer(MockPrayerCreate("陳太"), nil)
	require.NoError(t, err)
	root, err := h.Engagement.AddComment(item.Prayer_Item_ID, MockTextComment("王姐妹"), nil, nil)
	require.NoError(t, err)
	prayerID := strconv.Itoa(item.Prayer_Item_ID)

	tests := []struct {
		name           string
		commentID      string
		content        string
		expectedStatus int
	}{
		{name: "reply to comment", commentID: strconv.Itoa(root.Comment_ID), content: "謝謝", expectedStatus: http.StatusCreated},
		{name: "blank reply", commentID: strconv.Itoa(root.Comment_ID), content: "", expectedStatus: http.StatusBadRequest},
		{name: "unknown parent", commentID: "999", content: "謝謝", expectedStatus: http.StatusNotFound},
		{name: "invalid parent", commentID: "x", content: "謝謝", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()
			SetAuthenticatedUser(c, "陳太", false)
			c.Params = append(c.Params,
				gin.Param{Key: "prayer_id", Value: prayerID},
				gin.Param{Key: "comment_id", Value: tt.commentID},
			)
			c.Request = NewMultipartRequest(http.MethodPost, "/replies", map[string][]string{"content": {tt.content}}, nil)

			h.CreateReply(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	// replies never change the root count
	count, err := h.Engagement.CommentCount(item.Prayer_Item_ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Test GetPrayerComments and PrayForComment
func TestGetPrayerCommentsAndPray(t *testing.T) {
	h := SetupTestHandlers(t)
	item, err := h.Engagement.SubmitPrayer(MockPrayerCreate("陳太"), nil)
	require.NoError(t, err)
	older, err := h.Engagement.AddComment(item.Prayer_Item_ID, MockTextComment("王姐妹"), nil, nil)
	require.NoError(t, err)
	newer, err := h.Engagement.AddComment(item.Prayer_Item_ID, MockTextComment("李弟兄"), nil, nil)
	require.NoError(t, err)
	reply, err := h.Engagement.AddReply(item.Prayer_Item_ID, older.Comment_ID, MockTextComment("陳太"), nil, nil)
	require.NoError(t, err)
	prayerID := strconv.Itoa(item.Prayer_Item_ID)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, "陳太", false)
	c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: prayerID})
	c.Params = append(c.Params, gin.Param{Key: "comment_id", Value: strconv.Itoa(reply.Comment_ID)})

	h.PrayForComment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var prayed struct {
		Comment_ID int `json:"commentId"`
		Pray_Count int `json:"prayCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prayed))
	assert.Equal(t, reply.Comment_ID, prayed.Comment_ID)
	assert.Equal(t, 1, prayed.Pray_Count)

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, "陳太", false)
	c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: prayerID})

	h.GetPrayerComments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Comment_Count int              `json:"commentCount"`
		Comments      []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	derived, err := h.Engagement.CommentCount(item.Prayer_Item_ID)
	require.NoError(t, err)
	assert.Equal(t, derived, response.Comment_Count)
	assert.Equal(t, 2, response.Comment_Count)
	require.Len(t, response.Comments, 2)
	assert.Equal(t, newer.Comment_ID, response.Comments[0].Comment_ID)
	assert.Equal(t, older.Comment_ID, response.Comments[1].Comment_ID)
	require.Len(t, response.Comments[1].Replies, 1)
	assert.Equal(t, 1, response.Comments[1].Replies[0].Pray_Count)

	c, w = SetupTestContext()
	SetAuthenticatedUser(c, "陳太", false)
	c.Params = append(c.Params, gin.Param{Key: "prayer_id", Value: "999"})

	h.GetPrayerComments(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
