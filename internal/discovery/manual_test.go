package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

func TestManualAdapterDiscover(t *testing.T) {
	settings := &conf.Settings{
		Cameras: conf.CameraSettings{
			Manual: []conf.ManualCamera{
				{
					Name:      "Shed Camera",
					RecordURL: "rtsp://10.0.0.40/main",
					DetectURL: "rtsp://10.0.0.40/sub",
					Width:     1280,
					Height:    720,
					FPS:       10,
					Area:      "Garden",
				},
				{
					Name:         "barn",
					FriendlyName: "Barn Overview",
					RecordURL:    "rtsp://10.0.0.41/main",
				},
			},
		},
	}
	adapter := NewManualAdapter(settings)
	assert.True(t, adapter.Available())

	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 2)

	shed := findCamera(t, cameras, "manual_shed_camera")
	assert.Equal(t, "shed_camera", shed.Name)
	assert.Equal(t, "Shed Camera", shed.FriendlyName)
	assert.Equal(t, "rtsp://10.0.0.40/sub", shed.DetectURL)
	assert.Equal(t, 1280, shed.Width)
	assert.Equal(t, "Garden", shed.Area)
	assert.True(t, shed.Available)

	barn := findCamera(t, cameras, "manual_barn")
	assert.Equal(t, "Barn Overview", barn.FriendlyName)
	assert.Equal(t, barn.RecordURL, barn.DetectURL)
	assert.Equal(t, camera.DefaultWidth, barn.Width)
	assert.Equal(t, camera.DefaultFPS, barn.FPS)
}

func TestManualAdapterSkipsInvalidDeclarations(t *testing.T) {
	settings := &conf.Settings{
		Cameras: conf.CameraSettings{
			Manual: []conf.ManualCamera{
				{Name: "", RecordURL: "rtsp://10.0.0.42/main"},
				{Name: "no_stream"},
				{Name: "ok", RecordURL: "rtsp://10.0.0.43/main"},
			},
		},
	}
	adapter := NewManualAdapter(settings)

	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 1)
	assert.Equal(t, "manual_ok", cameras[0].ID)
}
