package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/models"
)

// prayerView adds the presentation hints computed for the current user.
type prayerView struct {
	models.PrayerItem
	Can_Share bool `json:"canShare"`
}

func viewPrayer(item models.PrayerItem, currentUser string) prayerView {
	return prayerView{PrayerItem: item, Can_Share: item.CanShare(currentUser)}
}

// GetPrayers lists the wall, optionally narrowed to the caller's own items, one
// category and a free-text query.
func (h *Handlers) GetPrayers(c *gin.Context) {
	currentUser := middlewares.CurrentUser(c)

	mine := false
	if raw := c.Query("mine"); raw != "" {
		var err error
		mine, err = strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "Invalid mine flag", err)
			return
		}
	}

	items := h.Engagement.ListPrayers(models.PrayerFilter{
		Owner_Only:   mine,
		Current_User: currentUser,
		Category:     c.Query("category"),
		Search:       c.Query("q"),
	})

	views := make([]prayerView, 0, len(items))
	for _, item := range items {
		views = append(views, viewPrayer(item, currentUser))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handlers) GetPrayerCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engagement.Categories())
}

func (h *Handlers) GetPrayer(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}

	item, err := h.Engagement.GetPrayer(prayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewPrayer(item, middlewares.CurrentUser(c)))
}

// CreatePrayer accepts a multipart (or urlencoded) form with title, description,
// categories and images fields. The item starts out pending.
func (h *Handlers) CreatePrayer(c *gin.Context) {
	h.limitBody(c)

	files, err := formFiles(c, "images")
	if err != nil {
		uploadError(c, err)
		return
	}

	in := models.PrayerItemCreate{
		Description: c.PostForm("description"),
		Categories:  c.PostFormArray("categories"),
		Author_Name: middlewares.CurrentUser(c),
	}
	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}

	item, err := h.Engagement.SubmitPrayer(in, files)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.notifyPending(item)

	c.JSON(http.StatusCreated, viewPrayer(item, in.Author_Name))
}

func (h *Handlers) notifyPending(item models.PrayerItem) {
	// failures are logged by the notice service
	_ = h.Notices.NotifyPending(item)
}

func (h *Handlers) PrayForPrayer(c *gin.Context) {
	prayerID, err := intParam(c, "prayer_id")
	if err != nil {
		badRequest(c, "Invalid prayer ID", err)
		return
	}

	count, err := h.Engagement.PrayForPrayer(prayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prayerId": prayerID, "prayCount": count})
}
