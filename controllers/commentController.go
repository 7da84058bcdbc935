package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/models"
)

// GetPrayerComments returns the comment forest of a prayer item together with
// its root comment count.
func (h *Handlers) GetPrayerComments(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}

	comments, err := h.Engagement.Comments(prayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.Engagement.CommentCount(prayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commentCount": count, "comments": comments})
}

func (h *Handlers) CreateComment(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}

	in, images, audio, ok := h.readComment(c)
	if !ok {
		return
	}

	comment, err := h.Engagement.AddComment(prayerID, in, images, audio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// CreateReply answers a comment or another reply.
func (h *Handlers) CreateReply(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}
	commentID, err := intParam(c, "comment_id")
	if err != nil {
		badRequest(c, "Invalid comment ID", err)
		return
	}

	in, images, audio, ok := h.readComment(c)
	if !ok {
		return
	}

	reply, err := h.Engagement.AddReply(prayerID, commentID, in, images, audio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// readComment collects the content field and the images and audio files of a
// comment form. It writes the error response itself when the upload is unusable.
func (h *Handlers) readComment(c *gin.Context) (models.CommentCreate, []media.File, *media.File, bool) {
	h.limitBody(c)

	images, err := formFiles(c, "images")
	if err != nil {
		uploadError(c, err)
		return models.CommentCreate{}, nil, nil, false
	}
	audio, err := formFile(c, "audio")
	if err != nil {
		uploadError(c, err)
		return models.CommentCreate{}, nil, nil, false
	}

	in := models.CommentCreate{
		Author_Name: middlewares.CurrentUser(c),
		Content:     c.PostForm("content"),
	}
	return in, images, audio, true
}

func (h *Handlers) PrayForComment(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}
	commentID, err := intParam(c, "comment_id")
	if err != nil {
		badRequest(c, "Invalid comment ID", err)
		return
	}

	count, err := h.Engagement.PrayForComment(prayerID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commentId": commentID, "prayCount": count})
}
