package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/media"
)

// limitBody caps the request body at the configured upload size.
func (h *Handlers) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
}

// formFiles reads every file sent under field. A request that is not multipart
// simply carries no files.
func formFiles(c *gin.Context, field string) ([]media.File, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File[field]
	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readFormFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// formFile reads the single file sent under field, or nil when there is none.
func formFile(c *gin.Context, field string) (*media.File, error) {
	files, err := formFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	if len(files) > 1 {
		return nil, fmt.Errorf("only one %s file is allowed", field)
	}
	return &files[0], nil
}

func readFormFile(fh *multipart.FileHeader) (media.File, error) {
	src, err := fh.Open()
	if err != nil {
		return media.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return media.File{}, err
	}
	return media.File{
		Name:      fh.Filename,
		MediaType: media.ResolveMediaType(fh.Header.Get("Content-Type"), data),
		Data:      data,
	}, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// uploadError tells oversized bodies apart from malformed ones.
func uploadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}
	badRequest(c, "Invalid upload", err)
}

func intParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
