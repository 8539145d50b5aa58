package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
)

type stubAdapter struct {
	cameras []camera.Camera
}

func (s stubAdapter) Source() string  { return "stub" }
func (s stubAdapter) Available() bool { return true }

func (s stubAdapter) Discover(_ context.Context) ([]camera.Camera, error) {
	return s.cameras, nil
}

func builderSettings(t *testing.T) *conf.Settings {
	t.Helper()
	return &conf.Settings{
		Frigate: conf.FrigateSettings{
			Version:  conf.VersionV014,
			Detector: conf.DetectorSettings{Type: conf.DetectorEdgeTPU, Device: "usb"},
			Hwaccel:  conf.HwaccelVAAPI,
		},
		MQTT: conf.MQTTSettings{Host: "broker.local", Port: 1883},
		Features: conf.FeatureSettings{
			Birdseye: conf.BirdseyeSettings{Enabled: true, Mode: conf.BirdseyeModeObjects},
		},
		Retention: conf.RetentionSettings{Alerts: 30, Detections: 30, Motion: 7, Snapshots: 30},
		Cameras: conf.CameraSettings{
			Manual: []conf.ManualCamera{
				{Name: "shed", RecordURL: "rtsp://10.0.0.40/main"},
				{Name: "barn", RecordURL: "rtsp://10.0.0.41/main"},
			},
		},
		Groups: conf.GroupSettings{FromAreas: true},
		Output: conf.OutputSettings{Path: filepath.Join(t.TempDir(), "frigate.yml")},
	}
}

func TestBuilderRunWritesDocument(t *testing.T) {
	settings := builderSettings(t)
	b := New(&directory.Static{}, settings)

	result, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Catalog, 2)
	assert.NotZero(t, result.Duration)
	assert.False(t, b.Stale())
	assert.Same(t, result, b.LastResult())

	raw, err := os.ReadFile(settings.Output.Path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "cameras")
	assert.Equal(t, "broker.local", doc["mqtt"].(map[string]any)["host"])
}

func TestBuilderDiscoverMarksNewOnSecondPass(t *testing.T) {
	settings := builderSettings(t)
	b := New(&directory.Static{}, settings)

	first, _, err := b.Discover(context.Background())
	require.NoError(t, err)
	for i := range first {
		assert.False(t, first[i].IsNew, "first pass must not flag anything as new")
	}

	settings.Cameras.Manual = append(settings.Cameras.Manual,
		conf.ManualCamera{Name: "gate", RecordURL: "rtsp://10.0.0.42/main"})

	second, _, err := b.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 3)
	for i := range second {
		if second[i].ID == "manual_gate" {
			assert.True(t, second[i].IsNew)
		} else {
			assert.False(t, second[i].IsNew)
		}
	}
}

func TestBuilderSelectionFilter(t *testing.T) {
	settings := builderSettings(t)
	settings.Cameras.Selected = []string{"manual_shed"}
	b := New(&directory.Static{}, settings)

	cameras, _, err := b.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 1)
	assert.Equal(t, "manual_shed", cameras[0].ID)
}

func TestBuilderExcludesUnavailableCameras(t *testing.T) {
	settings := builderSettings(t)
	settings.Cameras.Manual = nil
	settings.Cameras.ExcludeUnavailable = true

	coordinator := discovery.NewCoordinatorWith(stubAdapter{cameras: []camera.Camera{
		{ID: "stub_up", FriendlyName: "Up", Source: "stub", Available: true},
		{ID: "stub_down", FriendlyName: "Down", Source: "stub", Available: false},
	}})
	b := New(&directory.Static{}, settings, WithCoordinator(coordinator))

	cameras, _, err := b.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 1)
	assert.Equal(t, "stub_up", cameras[0].ID)
}

func TestBuilderMarkStale(t *testing.T) {
	b := New(&directory.Static{}, builderSettings(t))
	assert.False(t, b.Stale())
	b.MarkStale()
	assert.True(t, b.Stale())
}

func TestBuilderWritesFileLog(t *testing.T) {
	settings := builderSettings(t)
	settings.Logging.File = filepath.Join(t.TempDir(), "logs", "builder.log")

	b := New(&directory.Static{}, settings)
	_, err := b.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, b.Close())

	raw, err := os.ReadFile(settings.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "pipeline run completed")
	assert.Contains(t, string(raw), `"service":"builder"`)
}

func TestBuilderCloseWithoutFileLog(t *testing.T) {
	b := New(&directory.Static{}, builderSettings(t))
	assert.NoError(t, b.Close())
}

func TestBuilderRunFailsOnUnknownVersion(t *testing.T) {
	settings := builderSettings(t)
	settings.Frigate.Version = "0.12"
	b := New(&directory.Static{}, settings)

	_, err := b.Run(context.Background())
	require.Error(t, err)

	// Fail-fast generation must not leave a file behind.
	_, statErr := os.Stat(settings.Output.Path)
	assert.True(t, os.IsNotExist(statErr))
}
