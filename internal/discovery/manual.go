package discovery

import (
	"context"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

const manualSource = "manual"

// ManualAdapter yields user-declared cameras from configuration. It is the
// baseline adapter: always available, never touches the host directory.
type ManualAdapter struct {
	settings *conf.Settings
}

func NewManualAdapter(settings *conf.Settings) *ManualAdapter {
	return &ManualAdapter{settings: settings}
}

func (a *ManualAdapter) Source() string { return manualSource }

func (a *ManualAdapter) Available() bool { return true }

func (a *ManualAdapter) Discover(_ context.Context) ([]camera.Camera, error) {
	var cameras []camera.Camera
	for i, decl := range a.settings.Cameras.Manual {
		if decl.Name == "" {
			logger.Warn("manual camera is missing a name, skipping", "index", i)
			continue
		}
		if decl.RecordURL == "" {
			logger.Warn("manual camera is missing a record url, skipping",
				"index", i, "name", decl.Name)
			continue
		}

		camName := camera.NormalizeName(decl.Name)
		friendly := decl.FriendlyName
		if friendly == "" {
			friendly = decl.Name
		}

		cam := camera.Camera{
			ID:           manualSource + "_" + camName,
			Name:         camName,
			FriendlyName: friendly,
			Source:       manualSource,
			RecordURL:    decl.RecordURL,
			DetectURL:    decl.DetectURL,
			LiveViewURL:  decl.LiveViewURL,
			Width:        decl.Width,
			Height:       decl.Height,
			FPS:          decl.FPS,
			Area:         decl.Area,
			Available:    true, // declared cameras are always considered live
		}
		cam.ApplyDefaults()
		cameras = append(cameras, cam)
	}
	return cameras, nil
}
