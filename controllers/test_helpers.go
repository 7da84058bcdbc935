package controllers

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/services"
	"github.com/PrayerWall/store"
)

// SetupTestHandlers builds handlers over a fresh, empty engine.
func SetupTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := store.NewRegistry(store.NewCommentStore(nil), store.RegistryOptions{})
	engine := services.NewEngagementService(services.EngagementOptions{
		Registry:  registry,
		Validator: media.NewValidator(media.Policy{MaxImageBytes: 1024}),
		Library:   media.NewLibrary(),
		Metrics:   services.NewMetricsService(),
		Logger:    logger,
	})
	return &Handlers{
		Engagement:     engine,
		Moderation:     services.NewModerationService(engine),
		Notices:        services.NewModerationNoticeService(services.NoticeOptions{}, logger),
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// SetAuthenticatedUser sets the currentUser and moderator values in the Gin context
// This simulates what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, name string, isModerator bool) {
	c.Set(middlewares.CurrentUserKey, name)
	c.Set(middlewares.ModeratorKey, isModerator)
}

// NewMultipartRequest encodes fields and files as a multipart/form-data body.
func NewMultipartRequest(method, target string, fields map[string][]string, files map[string][]media.File) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, values := range fields {
		for _, v := range values {
			_ = writer.WriteField(name, v)
		}
	}
	for name, list := range files {
		for _, f := range list {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", `form-data; name="`+name+`"; filename="`+f.Name+`"`)
			if f.MediaType != "" {
				header.Set("Content-Type", f.MediaType)
			}
			part, _ := writer.CreatePart(header)
			_, _ = part.Write(f.Data)
		}
	}
	_ = writer.Close()

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// NewJSONRequest builds a request with a raw JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
