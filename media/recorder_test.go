package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrayerWall/models"
)

type failingDevice struct {
	err error
}

func (d failingDevice) Open(ctx context.Context) (Stream, error) {
	return nil, d.err
}

type fixedStream struct {
	clip Clip
}

func (s fixedStream) Finish() (Clip, error) { return s.clip, nil }

type fixedDevice struct {
	clip Clip
}

func (d fixedDevice) Open(ctx context.Context) (Stream, error) {
	return fixedStream{clip: d.clip}, nil
}

func TestRecorderLifecycle(t *testing.T) {
	var r Recorder
	require.False(t, r.Recording())

	require.NoError(t, r.Start(context.Background(), RemoteDevice{MediaType: "audio/mp4"}))
	assert.True(t, r.Recording())

	require.NoError(t, r.Feed([]byte("abc")))
	require.NoError(t, r.Feed([]byte("def")))

	clip, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, "audio/mp4", clip.MediaType)
	assert.Equal(t, []byte("abcdef"), clip.Data)
	assert.False(t, r.Recording())
}

func TestRecorderRejectsSecondStart(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Start(context.Background(), RemoteDevice{}))

	err := r.Start(context.Background(), RemoteDevice{})
	assert.ErrorIs(t, err, ErrRecordingInProgress)
	assert.True(t, r.Recording())
}

func TestRecorderStopWhenIdle(t *testing.T) {
	var r Recorder

	_, err := r.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
	assert.ErrorIs(t, r.Feed([]byte("x")), ErrNotRecording)
}

func TestRecorderFeedUnsupported(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Start(context.Background(), fixedDevice{clip: Clip{MediaType: "audio/wav"}}))

	assert.ErrorIs(t, r.Feed([]byte("x")), ErrFeedUnsupported)

	clip, err := r.Stop()
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", clip.MediaType)
}

func TestRecorderDeviceFailures(t *testing.T) {
	tests := []struct {
		name           string
		device         Device
		expectedReason string
	}{
		{"permission denied", RemoteDevice{Failure: "NotAllowedError"}, models.DeviceReasonPermissionDenied},
		{"no device", RemoteDevice{Failure: "NotFoundError"}, models.DeviceReasonNoDevice},
		{"busy", RemoteDevice{Failure: "NotReadableError"}, models.DeviceReasonBusy},
		{"aborted", RemoteDevice{Failure: "AbortError"}, models.DeviceReasonAborted},
		{"unsupported", RemoteDevice{Failure: "NotSupportedError"}, models.DeviceReasonUnsupported},
		{"plain error", failingDevice{err: errors.New("boom")}, models.DeviceReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recorder
			err := r.Start(context.Background(), tt.device)

			assert.ErrorIs(t, err, models.ErrDeviceUnavailable)
			var devErr *models.DeviceError
			require.True(t, errors.As(err, &devErr))
			assert.Equal(t, tt.expectedReason, devErr.Reason)
			assert.NotEmpty(t, devErr.Message())
			assert.False(t, r.Recording())
		})
	}
}

func TestRemoteDeviceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var r Recorder
	err := r.Start(ctx, RemoteDevice{})

	var devErr *models.DeviceError
	require.True(t, errors.As(err, &devErr))
	assert.Equal(t, models.DeviceReasonAborted, devErr.Reason)
}
