package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the store, services and controllers.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrParentNotFound    = errors.New("parent comment not found")
	ErrMediaRejected     = errors.New("media rejected")
	ErrDeviceUnavailable = errors.New("recording device unavailable")
	ErrConflict          = errors.New("conflict")
)

// ValidationError describes a blank or missing required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MediaRejectedError lists every file refused during a submission.
type MediaRejectedError struct {
	Rejections []MediaRejection
}

func (e *MediaRejectedError) Error() string {
	if len(e.Rejections) == 1 {
		return fmt.Sprintf("media rejected: %s: %s", e.Rejections[0].File_Name, e.Rejections[0].Reason)
	}
	reasons := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		reasons = append(reasons, r.File_Name+": "+r.Reason)
	}
	return "media rejected: " + strings.Join(reasons, "; ")
}

func (e *MediaRejectedError) Unwrap() error { return ErrMediaRejected }

// NewMediaRejected builds a rejection error for a single reason.
func NewMediaRejected(fileName, reason string) *MediaRejectedError {
	return &MediaRejectedError{Rejections: []MediaRejection{{File_Name: fileName, Reason: reason}}}
}

// Device failure reasons
const (
	DeviceReasonPermissionDenied = "permission denied"
	DeviceReasonNoDevice         = "no device"
	DeviceReasonBusy             = "device busy"
	DeviceReasonAborted          = "aborted"
	DeviceReasonUnsupported      = "unsupported"
	DeviceReasonUnknown          = "unavailable"
)

var deviceMessages = map[string]string{
	DeviceReasonPermissionDenied: "Please allow microphone access and try again.",
	DeviceReasonNoDevice:         "No microphone was found.",
	DeviceReasonBusy:             "The microphone is being used by another application.",
	DeviceReasonAborted:          "Recording was interrupted, please try again.",
	DeviceReasonUnsupported:      "Voice recording is not supported on this device or browser.",
	DeviceReasonUnknown:          "The microphone could not be accessed.",
}

// DeviceError reports why audio capture could not begin.
type DeviceError struct {
	Reason string
	Cause  error
}

func (e *DeviceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recording device unavailable: %s: %v", e.Reason, e.Cause)
	}
	return "recording device unavailable: " + e.Reason
}

func (e *DeviceError) Unwrap() error { return ErrDeviceUnavailable }

// Message returns guidance suitable for showing to the user.
func (e *DeviceError) Message() string {
	if msg, ok := deviceMessages[e.Reason]; ok {
		return msg
	}
	return deviceMessages[DeviceReasonUnknown]
}
