package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetPendingPrayers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Moderation.Pending())
}

func (h *Handlers) ApprovePrayer(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}

	item, err := h.Moderation.Approve(prayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
