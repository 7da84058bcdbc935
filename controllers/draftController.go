package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/models"
)

// recordingStart is what the client reports after asking its own microphone.
type recordingStart struct {
	Media_Type   string `json:"mediaType"`
	Device_Error string `json:"deviceError"`
}

func (h *Handlers) CreateDraft(c *gin.Context) {
	var in models.DraftCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	d, err := h.Engagement.NewDraft(middlewares.CurrentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handlers) GetDraft(c *gin.Context) {
	d, err := h.Engagement.GetDraft(middlewares.CurrentUser(c), c.Param("draft_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) DeleteDraft(c *gin.Context) {
	if err := h.Engagement.DiscardDraft(middlewares.CurrentUser(c), c.Param("draft_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}

// AttachDraftImages adds the images of a multipart upload. Refused files are
// listed next to the updated draft rather than failing the request.
func (h *Handlers) AttachDraftImages(c *gin.Context) {
	h.limitBody(c)

	files, err := formFiles(c, "images")
	if err != nil {
		uploadError(c, err)
		return
	}

	d, rejected, err := h.Engagement.AttachImages(middlewares.CurrentUser(c), c.Param("draft_id"), files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "rejections": rejected})
}

func (h *Handlers) RemoveDraftImage(c *gin.Context) {
	index, err := intParam(c, "index")
	if err != nil {
		badRequest(c, "Invalid image index", err)
		return
	}

	d, err := h.Engagement.RemoveImage(middlewares.CurrentUser(c), c.Param("draft_id"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// StartDraftRecording opens a capture session fed by the client. A deviceError
// reported by the client surfaces as the matching device failure.
func (h *Handlers) StartDraftRecording(c *gin.Context) {
	var in recordingStart
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "Invalid request", err)
			return
		}
	}

	device := media.RemoteDevice{MediaType: in.Media_Type, Failure: in.Device_Error}
	d, err := h.Engagement.StartRecording(c.Request.Context(), middlewares.CurrentUser(c), c.Param("draft_id"), device)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// AppendDraftRecording takes a raw chunk of recorded audio as the request body.
func (h *Handlers) AppendDraftRecording(c *gin.Context) {
	h.limitBody(c)

	chunk, err := io.ReadAll(c.Request.Body)
	if err != nil {
		uploadError(c, err)
		return
	}

	if err := h.Engagement.FeedRecording(middlewares.CurrentUser(c), c.Param("draft_id"), chunk); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": len(chunk)})
}

func (h *Handlers) StopDraftRecording(c *gin.Context) {
	d, err := h.Engagement.StopRecording(middlewares.CurrentUser(c), c.Param("draft_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) RemoveDraftAudio(c *gin.Context) {
	d, err := h.Engagement.RemoveAudio(middlewares.CurrentUser(c), c.Param("draft_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// CommitDraft publishes the draft. A failed commit leaves the draft as it was.
func (h *Handlers) CommitDraft(c *gin.Context) {
	var in models.DraftCommit
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	currentUser := middlewares.CurrentUser(c)
	result, err := h.Engagement.CommitDraft(currentUser, c.Param("draft_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Prayer != nil {
		go h.notifyPending(*result.Prayer)
		c.JSON(http.StatusCreated, gin.H{"prayer": viewPrayer(*result.Prayer, currentUser)})
		return
	}
	c.JSON(http.StatusCreated, result)
}
