// Package media validates image and audio attachments and turns accepted payloads
// into references that can be displayed or played back.
package media

import (
	"strings"

	"github.com/PrayerWall/models"
)

// Defaults used when a Policy field is left at zero.
const (
	DefaultMaxImageBytes = 10 << 20
	DefaultMaxItemImages = 5
)

// File is a candidate attachment as received from the presentation layer.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// Size is the payload length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Policy holds the limits applied by a Validator.
type Policy struct {
	MaxImageBytes int64
	MaxItemImages int
}

// Validator checks candidate attachments. It never stores anything.
type Validator struct {
	policy Policy
}

func NewValidator(policy Policy) *Validator {
	if policy.MaxImageBytes <= 0 {
		policy.MaxImageBytes = DefaultMaxImageBytes
	}
	if policy.MaxItemImages <= 0 {
		policy.MaxItemImages = DefaultMaxItemImages
	}
	return &Validator{policy: policy}
}

// Policy returns the effective limits.
func (v *Validator) Policy() Policy {
	return v.policy
}

// ValidateImages splits files into the accepted subset and a rejection per refused
// file, preserving input order. attached is the number of images the submission
// already holds; capped applies the per-item image limit, which comment and reply
// attachments are not subject to.
func (v *Validator) ValidateImages(files []File, attached int, capped bool) ([]File, []models.MediaRejection) {
	var accepted []File
	var rejected []models.MediaRejection

	for _, f := range files {
		var reason string
		if capped && attached+len(accepted) >= v.policy.MaxItemImages {
			reason = models.MediaReasonLimitReached
		} else {
			reason = v.imageReason(f)
		}
		if reason != "" {
			rejected = append(rejected, models.MediaRejection{File_Name: f.Name, Reason: reason})
			continue
		}
		accepted = append(accepted, f)
	}

	return accepted, rejected
}

func (v *Validator) imageReason(f File) string {
	if !IsImage(f.MediaType) {
		return models.MediaReasonInvalidFormat
	}
	if f.Size() > v.policy.MaxImageBytes {
		return models.MediaReasonTooLarge
	}
	return ""
}

// ValidateAudio checks an uploaded or recorded clip.
func (v *Validator) ValidateAudio(f File) error {
	if !IsAudio(f.MediaType) {
		return models.NewMediaRejected(f.Name, models.MediaReasonInvalidFormat)
	}
	return nil
}

func IsImage(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}

func IsAudio(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "audio/")
}
