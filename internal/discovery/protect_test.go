package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

func findCamera(t *testing.T, cameras []camera.Camera, id string) camera.Camera {
	t.Helper()
	for i := range cameras {
		if cameras[i].ID == id {
			return cameras[i]
		}
	}
	t.Fatalf("no camera with id %q in %d records", id, len(cameras))
	return camera.Camera{}
}

func protectFixture() *directory.Static {
	return &directory.Static{
		EntityList: []directory.Entity{
			{ID: "camera.front_door_high_resolution_channel", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev1"},
			{ID: "camera.front_door_medium_resolution_channel", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev1"},
			{ID: "camera.front_door_low_resolution_channel", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev1"},
			{ID: "camera.front_door_high_resolution_channel_insecure", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev1"},
			{ID: "camera.front_door_package_camera", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev1"},
			// Garage exposes only the high-res channel.
			{ID: "camera.garage_high_resolution_channel", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev2"},
			// Disabled cameras contribute nothing.
			{ID: "camera.attic_high_resolution_channel", Integration: "unifiprotect", Domain: "camera", DeviceID: "dev3", Disabled: true},
		},
		States: map[string]directory.State{
			"camera.front_door_high_resolution_channel": {
				State: "idle",
				Attributes: map[string]any{
					"friendly_name": "Front Door High resolution channel",
				},
			},
			"camera.front_door_low_resolution_channel": {
				State: "idle",
				Attributes: map[string]any{
					"width": 640, "height": 360, "fps": 10,
				},
			},
			"camera.front_door_package_camera": {
				State: "idle",
				Attributes: map[string]any{
					"friendly_name": "Front Door package camera",
				},
			},
			"camera.garage_high_resolution_channel": {
				State: "unavailable",
				Attributes: map[string]any{
					"friendly_name": "Garage High resolution channel",
					"width":         1920, "height": 1080, "fps": 15,
				},
			},
		},
		StreamSources: map[string]string{
			"camera.front_door_high_resolution_channel": "rtsps://nvr:7441/frontHigh",
			"camera.front_door_low_resolution_channel":  "rtsps://nvr:7441/frontLow",
			"camera.front_door_package_camera":          "rtsps://nvr:7441/frontPkg",
			"camera.garage_high_resolution_channel":     "rtsps://nvr:7441/garageHigh",
		},
		Devices: map[string]directory.Device{
			"dev1": {ID: "dev1", Name: "Front Door", AreaID: "area1"},
			"dev2": {ID: "dev2", Name: "Garage", AreaID: "area2"},
		},
		Areas: map[string]directory.Area{
			"area1": {ID: "area1", Name: "Porch"},
			"area2": {ID: "area2", Name: "Garage"},
		},
	}
}

func TestProtectAdapterDiscover(t *testing.T) {
	adapter := NewProtectAdapter(protectFixture())

	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 3)

	front := findCamera(t, cameras, "unifi_front_door")
	assert.Equal(t, "front_door", front.Name)
	assert.Equal(t, "Front Door", front.FriendlyName)
	assert.Equal(t, "rtsps://nvr:7441/frontHigh?enableSrtp", front.RecordURL)
	assert.Equal(t, "rtsps://nvr:7441/frontLow?enableSrtp", front.DetectURL)
	assert.Equal(t, "rtspx://nvr:7441/frontHigh", front.LiveViewURL)
	assert.Equal(t, 640, front.Width)
	assert.Equal(t, 360, front.Height)
	assert.Equal(t, 10, front.FPS)
	assert.Equal(t, "Porch", front.Area)
	assert.True(t, front.Available)
}

func TestProtectAdapterPackageCamera(t *testing.T) {
	adapter := NewProtectAdapter(protectFixture())

	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)

	pkg := findCamera(t, cameras, "unifi_front_door_package")
	assert.Equal(t, "front_door_package", pkg.Name)
	assert.Equal(t, "Front Door Package", pkg.FriendlyName)
	assert.Equal(t, "rtsps://nvr:7441/frontPkg?enableSrtp", pkg.RecordURL)
	assert.Equal(t, 400, pkg.Width)
	assert.Equal(t, 300, pkg.Height)
}

func TestProtectAdapterDetectFallsBackToHigh(t *testing.T) {
	adapter := NewProtectAdapter(protectFixture())

	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)

	garage := findCamera(t, cameras, "unifi_garage")
	assert.Equal(t, garage.RecordURL, garage.DetectURL)
	assert.Equal(t, 1920, garage.Width)
	assert.Equal(t, 1080, garage.Height)
	assert.False(t, garage.Available)
}

func TestProtectAdapterSkipsCamerasWithoutStreams(t *testing.T) {
	svc := protectFixture()
	delete(svc.StreamSources, "camera.garage_high_resolution_channel")

	adapter := NewProtectAdapter(svc)
	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)

	for i := range cameras {
		assert.NotEqual(t, "unifi_garage", cameras[i].ID)
	}
}

func TestProtectAdapterAvailability(t *testing.T) {
	adapter := NewProtectAdapter(protectFixture())
	assert.True(t, adapter.Available())

	adapter = NewProtectAdapter(&directory.Static{})
	assert.False(t, adapter.Available())
}

func TestProtectAdapterCachesStreamLookups(t *testing.T) {
	svc := protectFixture()
	adapter := NewProtectAdapter(svc)

	_, err := adapter.Discover(context.Background())
	require.NoError(t, err)

	// Remove the backing sources; a second pass must still resolve from cache.
	svc.StreamSources = map[string]string{}
	cameras, err := adapter.Discover(context.Background())
	require.NoError(t, err)
	assert.Len(t, cameras, 3)
}
