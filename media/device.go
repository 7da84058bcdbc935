package media

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/PrayerWall/models"
)

// Clip is a finalized recording.
type Clip struct {
	MediaType string
	Data      []byte
}

// Device grants access to an audio input. Open may block until the user or the
// operating system answers a permission prompt.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is an active capture. Finish ends it and returns the recorded clip.
type Stream interface {
	Finish() (Clip, error)
}

var errStreamFinished = errors.New("stream already finished")

// ChunkStream collects data chunks pushed by a remote recorder, the way a browser
// MediaRecorder hands over data as it becomes available.
type ChunkStream struct {
	mu        sync.Mutex
	mediaType string
	buf       bytes.Buffer
	done      bool
}

func (s *ChunkStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return 0, errStreamFinished
	}
	return s.buf.Write(p)
}

func (s *ChunkStream) Finish() (Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return Clip{}, errStreamFinished
	}
	s.done = true
	data := make([]byte, s.buf.Len())
	copy(data, s.buf.Bytes())
	return Clip{MediaType: s.mediaType, Data: data}, nil
}

// RemoteDevice stands in for a microphone that lives on the client. The client
// reports the outcome of its own device request; a non-empty Failure holds the
// DOMException name it received.
type RemoteDevice struct {
	MediaType string
	Failure   string
}

func (d RemoteDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.DeviceError{Reason: models.DeviceReasonAborted, Cause: err}
	}
	if d.Failure != "" {
		return nil, DeviceErrorFromName(d.Failure)
	}
	mediaType := d.MediaType
	if mediaType == "" {
		mediaType = "audio/webm"
	}
	return &ChunkStream{mediaType: mediaType}, nil
}

// DeviceErrorFromName maps a browser DOMException name to a device error.
func DeviceErrorFromName(name string) *models.DeviceError {
	switch name {
	case "NotAllowedError", "SecurityError":
		return &models.DeviceError{Reason: models.DeviceReasonPermissionDenied}
	case "NotFoundError", "OverconstrainedError":
		return &models.DeviceError{Reason: models.DeviceReasonNoDevice}
	case "NotReadableError", "TrackStartError":
		return &models.DeviceError{Reason: models.DeviceReasonBusy}
	case "AbortError":
		return &models.DeviceError{Reason: models.DeviceReasonAborted}
	case "NotSupportedError", "TypeError":
		return &models.DeviceError{Reason: models.DeviceReasonUnsupported}
	default:
		return &models.DeviceError{Reason: models.DeviceReasonUnknown}
	}
}
