package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/PrayerWall/models"
)

var (
	// ErrRecordingInProgress is returned when Start is called on an active session.
	ErrRecordingInProgress = errors.New("a recording is already in progress")
	// ErrNotRecording is returned when Stop or Feed is called on an idle session.
	ErrNotRecording = errors.New("no recording in progress")
	// ErrFeedUnsupported is returned by Feed when the device captures on its own.
	ErrFeedUnsupported = errors.New("device does not accept pushed audio")
)

// Recorder is a two-state capture session: idle, then recording, then idle again.
// Stop finalizes the capture instead of discarding it.
type Recorder struct {
	stream Stream
}

// Recording reports whether a capture is active.
func (r *Recorder) Recording() bool {
	return r.stream != nil
}

// Start requests access to device and begins capturing. On failure the session
// stays idle.
func (r *Recorder) Start(ctx context.Context, device Device) error {
	if r.stream != nil {
		return ErrRecordingInProgress
	}

	stream, err := device.Open(ctx)
	if err != nil {
		var devErr *models.DeviceError
		if errors.As(err, &devErr) {
			return devErr
		}
		return &models.DeviceError{Reason: models.DeviceReasonUnknown, Cause: err}
	}

	r.stream = stream
	return nil
}

// Feed appends a chunk of captured audio for devices that receive pushed data.
func (r *Recorder) Feed(chunk []byte) error {
	if r.stream == nil {
		return ErrNotRecording
	}
	w, ok := r.stream.(io.Writer)
	if !ok {
		return ErrFeedUnsupported
	}
	_, err := w.Write(chunk)
	return err
}

// Stop ends the capture and yields exactly one clip.
func (r *Recorder) Stop() (Clip, error) {
	if r.stream == nil {
		return Clip{}, ErrNotRecording
	}

	stream := r.stream
	r.stream = nil

	clip, err := stream.Finish()
	if err != nil {
		return Clip{}, fmt.Errorf("finish recording: %w", err)
	}
	return clip, nil
}
